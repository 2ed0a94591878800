package port

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
)

// EventRepository defines persistence operations for the append-only audit
// log. Events are never updated or deleted.
type EventRepository interface {
	Append(ctx context.Context, ev *model.SecurityEvent) error
	// AppendScreenshot appends a screenshot_taken event and reports whether
	// it is the first one for this (media, actor) pair. The existence check
	// and the insert run in one transaction so duplicate OS-level fires
	// cannot both be "first".
	AppendScreenshot(ctx context.Context, ev *model.SecurityEvent) (first bool, err error)
	// ListByMedia returns the media's events in creation order.
	ListByMedia(ctx context.Context, mediaID db.UUID) ([]model.SecurityEvent, error)
}
