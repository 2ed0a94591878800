package task

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueBurnMedia(ctx context.Context, mediaID db.UUID, objectKey string) error {
	return nil
}

func (d *NoopDispatcher) EnqueueNotifyScreenshot(ctx context.Context, mediaID, actorID db.UUID) error {
	return nil
}
