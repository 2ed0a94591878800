package media

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/klyra-app/ephemera-go/internal/port"
)

type screenshotNotifierSrv struct {
	repo port.MediaRepository
	pub  port.NotificationPublisher
}

// compile-time check: *screenshotNotifierSrv must satisfy port.ScreenshotNotifier
var _ port.ScreenshotNotifier = (*screenshotNotifierSrv)(nil)

// NewScreenshotNotifier constructs a ScreenshotNotifier implementation.
func NewScreenshotNotifier(repo port.MediaRepository, pub port.NotificationPublisher) port.ScreenshotNotifier {
	return &screenshotNotifierSrv{repo: repo, pub: pub}
}

// NotifyScreenshot pushes the conversation alert for a captured screenshot.
// The media may already be soft-deleted by the time this runs (view-once
// items burn fast); its row still carries the conversation, so the alert
// goes out regardless.
func (s *screenshotNotifierSrv) NotifyScreenshot(ctx context.Context, in port.NotifyScreenshotInput) error {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.pub.PublishScreenshotAlert(ctx, item.ContextID, item.ID, in.ActorID); err != nil {
		return err
	}

	log.Printf("screenshot alert sent for media #%s, actor #%s", item.ID, in.ActorID)
	return nil
}
