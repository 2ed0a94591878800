package port

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
)

// ConsumeOpenInput carries the values for the guarded open update. ExpiresAt
// is the candidate expiry for a first open; it is only applied when the row
// has no opened_at yet. Event is the media_opened audit entry; its metadata
// view_count is filled in from the row state the update produced.
type ConsumeOpenInput struct {
	MediaID     db.UUID
	RecipientID db.UUID
	Now         time.Time
	ExpiresAt   *time.Time
	ViewOnce    bool
	Event       *model.SecurityEvent
}

// PermissionRepository defines persistence operations for permission rows.
// All mutations of a permission row go through here; no other component
// writes its fields.
type PermissionRepository interface {
	Create(ctx context.Context, perm *model.Permission) error
	Find(ctx context.Context, mediaID, recipientID db.UUID) (*model.Permission, error)
	// ConsumeOpen applies one open atomically: it increments view_count,
	// stamps last_viewed_at, and sets opened_at/expires_at if unset, but only
	// while the row is still viewable (not revoked, window not expired,
	// view-once not consumed). The audit event is inserted in the same
	// transaction, so a consumed view is always logged and a failed log
	// never consumes the view. It reports whether the update was applied
	// and the resulting view count; false means the caller lost a race or
	// the row is no longer viewable, in which case nothing was written.
	ConsumeOpen(ctx context.Context, in ConsumeOpenInput) (applied bool, viewCount int, err error)
	SetScreenshot(ctx context.Context, mediaID, recipientID db.UUID, canScreenshot bool, allowedUntil *time.Time) error
}
