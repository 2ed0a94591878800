package port

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
)

// UUIDGen produces identifiers for new rows.
type UUIDGen func() db.UUID

// Clock reads the current time. Every expiry decision goes through an
// injected Clock so tests can elapse timers deterministically.
type Clock func() time.Time

// MediaCreator registers a shared media item and fans out one permission row
// per recipient.
type MediaCreator interface {
	CreateMedia(ctx context.Context, in CreateMediaInput) (CreateMediaOutput, error)
}
type CreateMediaInput struct {
	ContextID        db.UUID
	OwnerID          db.UUID
	ObjectKey        string
	Kind             model.MediaKind
	Recipients       []db.UUID
	TimerSeconds     *int
	ViewOnce         bool
	WatermarkEnabled bool
}
type CreateMediaOutput struct {
	MediaID       db.UUID            `json:"media_id"`
	PermissionIDs map[string]db.UUID `json:"permission_ids"`
}

// MediaOpener is the view session entry point: it grants or denies access
// and, on success, returns the short-lived locator and display flags.
type MediaOpener interface {
	OpenMedia(ctx context.Context, in OpenMediaInput) (OpenMediaOutput, error)
}
type OpenMediaInput struct {
	MediaID  db.UUID
	ViewerID db.UUID
}
type OpenMediaOutput struct {
	URL             string     `json:"url"`
	AllowScreenshot bool       `json:"allow_screenshot"`
	ShouldBlur      bool       `json:"should_blur"`
	WatermarkText   *string    `json:"watermark_text,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	ViewOnce        bool       `json:"view_once"`
	ViewCount       int        `json:"view_count"`
}

// MediaCloser handles the explicit expiry trigger.
type MediaCloser interface {
	CloseMedia(ctx context.Context, in CloseMediaInput) error
}
type CloseMediaInput struct {
	MediaID db.UUID
	ActorID db.UUID
}

// ScreenshotGranter is the owner-only control plane over screenshot rights.
type ScreenshotGranter interface {
	SetScreenshotPermission(ctx context.Context, in SetScreenshotPermissionInput) error
}
type SetScreenshotPermissionInput struct {
	MediaID     db.UUID
	OwnerID     db.UUID
	RecipientID db.UUID
	Mode        model.ScreenshotMode
}

// AccessRequester lets a recipient ask the owner for screenshot rights.
type AccessRequester interface {
	RequestScreenshotAccess(ctx context.Context, in RequestScreenshotAccessInput) error
}
type RequestScreenshotAccessInput struct {
	MediaID     db.UUID
	RequesterID db.UUID
}

// ScreenshotReporter consumes screenshot events fired by the OS-level hook.
type ScreenshotReporter interface {
	ReportScreenshot(ctx context.Context, in ReportScreenshotInput) error
}
type ReportScreenshotInput struct {
	MediaID db.UUID
	ActorID db.UUID
	// Captured is true when the screenshot actually went through, false when
	// the client blocked the attempt.
	Captured bool
}

// SecurityEventsLister returns the audit trail of a media to its owner.
type SecurityEventsLister interface {
	ListSecurityEvents(ctx context.Context, in ListSecurityEventsInput) (ListSecurityEventsOutput, error)
}
type ListSecurityEventsInput struct {
	MediaID     db.UUID
	RequesterID db.UUID
}
type ListSecurityEventsOutput struct {
	ValidUntil time.Time             `json:"valid_until"`
	Events     []model.SecurityEvent `json:"events"`
}

// ScreenshotNotifier fans out the conversation alert for a first
// screenshot by an actor.
type ScreenshotNotifier interface {
	NotifyScreenshot(ctx context.Context, in NotifyScreenshotInput) error
}
type NotifyScreenshotInput struct {
	MediaID db.UUID
	ActorID db.UUID
}

// MediaBurner physically removes an expired blob from storage.
type MediaBurner interface {
	BurnMedia(ctx context.Context, in BurnMediaInput) error
}
type BurnMediaInput struct {
	MediaID   db.UUID
	ObjectKey string
}
