package model

import (
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// MediaKind discriminates the two blob types the subsystem protects.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaItem is the canonical record of one shared blob. The row is never
// hard-deleted: terminal expiry clears ObjectKey and sets DeletedAt so the
// audit trail keeps resolving.
type MediaItem struct {
	ID               db.UUID    `json:"id"`
	ContextID        db.UUID    `json:"context_id"`
	OwnerID          db.UUID    `json:"owner_id"`
	ObjectKey        *string    `json:"object_key,omitempty"`
	Kind             MediaKind  `json:"kind"`
	TimerSeconds     *int       `json:"timer_seconds,omitempty"`
	ViewOnce         bool       `json:"view_once"`
	WatermarkEnabled bool       `json:"watermark_enabled"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the item has been soft-deleted.
func (m *MediaItem) Deleted() bool {
	return m.DeletedAt != nil
}

// Ephemeral reports whether closing the item must burn the underlying blob.
func (m *MediaItem) Ephemeral() bool {
	return m.TimerSeconds != nil || m.ViewOnce
}
