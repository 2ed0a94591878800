package model

import (
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// ScreenshotMode is the owner-facing setting for one recipient's screenshot
// rights.
type ScreenshotMode string

const (
	ScreenshotModeOff     ScreenshotMode = "off"
	ScreenshotModeOn      ScreenshotMode = "on"
	ScreenshotModeOn10Min ScreenshotMode = "on_for_10_min"
)

// ScreenshotGrantWindow is how long a time-boxed screenshot grant lasts.
const ScreenshotGrantWindow = 10 * time.Minute

// Permission is one recipient's access-control row for one MediaItem.
// There is exactly one row per (media, recipient); the owner never has one.
//
// Invariants enforced by the repository update paths: ViewCount only grows,
// OpenedAt is set at most once and never reset, Revoked never goes back to
// false.
type Permission struct {
	ID            db.UUID    `json:"id"`
	MediaID       db.UUID    `json:"media_id"`
	SenderID      db.UUID    `json:"sender_id"`
	RecipientID   db.UUID    `json:"recipient_id"`
	CanView       bool       `json:"can_view"`
	CanScreenshot bool       `json:"can_screenshot"`
	Revoked       bool       `json:"revoked"`
	ViewCount     int        `json:"view_count"`
	OpenedAt      *time.Time `json:"opened_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	AllowedUntil  *time.Time `json:"allowed_until,omitempty"`
	LastViewedAt  *time.Time `json:"last_viewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ScreenshotAllowed evaluates the screenshot gate at a given instant: the
// right must be granted and, for a time-boxed grant, not yet lapsed.
func (p *Permission) ScreenshotAllowed(now time.Time) bool {
	return p.CanScreenshot && (p.AllowedUntil == nil || now.Before(*p.AllowedUntil))
}

// Expired reports whether the view window has closed at the given instant.
// A permission that was never opened has no window yet and cannot be expired.
func (p *Permission) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}
