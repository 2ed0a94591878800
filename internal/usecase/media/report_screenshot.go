package media

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type screenshotReporterSrv struct {
	repo       port.MediaRepository
	perms      port.PermissionRepository
	events     port.EventRepository
	cache      port.Cache
	dispatcher port.TaskDispatcher
	genID      port.UUIDGen
	clock      port.Clock
}

// compile-time check: *screenshotReporterSrv must satisfy port.ScreenshotReporter
var _ port.ScreenshotReporter = (*screenshotReporterSrv)(nil)

// NewScreenshotReporter constructs a ScreenshotReporter implementation.
func NewScreenshotReporter(repo port.MediaRepository, perms port.PermissionRepository, events port.EventRepository, cache port.Cache, dispatcher port.TaskDispatcher, genID port.UUIDGen, clock port.Clock) port.ScreenshotReporter {
	return &screenshotReporterSrv{repo: repo, perms: perms, events: events, cache: cache, dispatcher: dispatcher, genID: genID, clock: clock}
}

// ReportScreenshot logs every screenshot event the OS hook fires; the hook
// is known to double-fire, so the downstream notification goes out at most
// once per (media, actor) while the log keeps full fidelity. Blocked
// attempts are logged but never notified.
func (s *screenshotReporterSrv) ReportScreenshot(ctx context.Context, in port.ReportScreenshotInput) error {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}
	if in.ActorID != item.OwnerID {
		if _, err := s.perms.Find(ctx, in.MediaID, in.ActorID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotAuthorized
			}
			return err
		}
	}

	evType := model.EventScreenshotAttempted
	if in.Captured {
		evType = model.EventScreenshotTaken
	}
	ev := &model.SecurityEvent{
		ID:        s.genID(),
		ContextID: item.ContextID,
		MediaID:   item.ID,
		ActorID:   in.ActorID,
		Type:      evType,
		Metadata:  model.EventMetadata{"captured": in.Captured},
		CreatedAt: s.clock(),
	}

	if !in.Captured {
		if err := s.events.Append(ctx, ev); err != nil {
			return err
		}
		invalidateAudit(ctx, s.cache, item)
		return nil
	}

	first, err := s.events.AppendScreenshot(ctx, ev)
	if err != nil {
		return err
	}
	if first {
		if err := s.dispatcher.EnqueueNotifyScreenshot(ctx, item.ID, in.ActorID); err != nil {
			// the audit entry is committed; the notification is best effort
			log.Printf("failed to enqueue screenshot notification for media #%s: %v", item.ID, err)
		}
	}
	invalidateAudit(ctx, s.cache, item)

	log.Printf("screenshot on media #%s by %s recorded (first=%t)", item.ID, in.ActorID, first)
	return nil
}
