package mock

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	EventsOut []byte

	// etag values
	EtagEvents string

	// captured inputs
	GotMediaID     db.UUID
	GotRequesterID db.UUID

	// errors
	RenderErr error

	// call flags
	RenderCalled bool
}

func (m *HTTPRenderer) RenderSecurityEvents(ctx context.Context, lister port.SecurityEventsLister, mediaID, requesterID db.UUID) ([]byte, string, error) {
	m.RenderCalled = true
	m.GotMediaID = mediaID
	m.GotRequesterID = requesterID
	return m.EventsOut, m.EtagEvents, m.RenderErr
}
