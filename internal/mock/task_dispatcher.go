package mock

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// Dispatcher implements task dispatching for tests.
type Dispatcher struct {
	BurnCalled bool
	BurnIDs    []db.UUID
	BurnKeys   []string
	BurnErr    error

	NotifyCalled bool
	NotifyIDs    []db.UUID
	NotifyActors []db.UUID
	NotifyErr    error
}

func (m *Dispatcher) EnqueueBurnMedia(ctx context.Context, mediaID db.UUID, objectKey string) error {
	m.BurnCalled = true
	m.BurnIDs = append(m.BurnIDs, mediaID)
	m.BurnKeys = append(m.BurnKeys, objectKey)
	return m.BurnErr
}

func (m *Dispatcher) EnqueueNotifyScreenshot(ctx context.Context, mediaID, actorID db.UUID) error {
	m.NotifyCalled = true
	m.NotifyIDs = append(m.NotifyIDs, mediaID)
	m.NotifyActors = append(m.NotifyActors, actorID)
	return m.NotifyErr
}
