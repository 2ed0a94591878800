package port

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
)

// ExpireMediaInput carries the values for closing a media item. Event is the
// media_expired audit entry; its metadata revoked_permissions is filled in
// from the number of rows the revoke flipped.
type ExpireMediaInput struct {
	MediaID    db.UUID
	At         time.Time
	SoftDelete bool
	Event      *model.SecurityEvent
}

// MediaRepository defines persistence operations for media items.
type MediaRepository interface {
	// Create inserts the media item together with its permission fan-out in
	// one transaction, so a media row never exists without its recipients.
	Create(ctx context.Context, media *model.MediaItem, perms []*model.Permission) error
	GetByID(ctx context.Context, id db.UUID) (*model.MediaItem, error)
	// Expire closes the media in one transaction: it revokes every
	// non-revoked permission, optionally clears the object key and stamps
	// deleted_at, and writes the audit event. It returns how many permission
	// rows flipped; zero means the media was already closed and nothing was
	// written.
	Expire(ctx context.Context, in ExpireMediaInput) (int64, error)
}
