package port

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// TaskDispatcher enqueues asynchronous follow-ups to committed state changes.
type TaskDispatcher interface {
	// EnqueueBurnMedia schedules the physical deletion of a blob after a
	// terminal expiry. The object key travels in the payload because the
	// soft-deleted registry row no longer carries it.
	EnqueueBurnMedia(ctx context.Context, mediaID db.UUID, objectKey string) error
	// EnqueueNotifyScreenshot schedules the downstream system notification
	// for a first screenshot by an actor.
	EnqueueNotifyScreenshot(ctx context.Context, mediaID, actorID db.UUID) error
}
