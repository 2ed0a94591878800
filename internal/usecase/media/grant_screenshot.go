package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type screenshotGranterSrv struct {
	repo   port.MediaRepository
	perms  port.PermissionRepository
	events port.EventRepository
	cache  port.Cache
	genID  port.UUIDGen
	clock  port.Clock
}

// compile-time check: *screenshotGranterSrv must satisfy port.ScreenshotGranter
var _ port.ScreenshotGranter = (*screenshotGranterSrv)(nil)

// NewScreenshotGranter constructs a ScreenshotGranter implementation.
func NewScreenshotGranter(repo port.MediaRepository, perms port.PermissionRepository, events port.EventRepository, cache port.Cache, genID port.UUIDGen, clock port.Clock) port.ScreenshotGranter {
	return &screenshotGranterSrv{repo: repo, perms: perms, events: events, cache: cache, genID: genID, clock: clock}
}

// SetScreenshotPermission is the owner-only control over a recipient's
// can_screenshot/allowed_until pair: off, on, or on for a bounded window.
func (s *screenshotGranterSrv) SetScreenshotPermission(ctx context.Context, in port.SetScreenshotPermissionInput) error {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}
	if in.OwnerID != item.OwnerID {
		return ErrNotAuthorized
	}

	if _, err := s.perms.Find(ctx, in.MediaID, in.RecipientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPermissionNotFound
		}
		return err
	}

	now := s.clock()
	var (
		canScreenshot bool
		allowedUntil  *time.Time
		evType        model.EventType
	)
	switch in.Mode {
	case model.ScreenshotModeOff:
		evType = model.EventPermissionRevoked
	case model.ScreenshotModeOn:
		canScreenshot = true
		evType = model.EventPermissionGranted
	case model.ScreenshotModeOn10Min:
		canScreenshot = true
		until := now.Add(model.ScreenshotGrantWindow)
		allowedUntil = &until
		evType = model.EventPermissionGranted
	default:
		return fmt.Errorf("unknown screenshot mode %q", in.Mode)
	}

	if err := s.perms.SetScreenshot(ctx, in.MediaID, in.RecipientID, canScreenshot, allowedUntil); err != nil {
		return err
	}

	meta := model.EventMetadata{"recipient": in.RecipientID.String(), "mode": string(in.Mode)}
	if allowedUntil != nil {
		meta["allowed_until"] = allowedUntil.UTC().Format(time.RFC3339)
	}
	ev := &model.SecurityEvent{
		ID:        s.genID(),
		ContextID: item.ContextID,
		MediaID:   item.ID,
		ActorID:   in.OwnerID,
		Type:      evType,
		Metadata:  meta,
		CreatedAt: now,
	}
	if err := s.events.Append(ctx, ev); err != nil {
		return err
	}
	invalidateAudit(ctx, s.cache, item)

	log.Printf("screenshot permission on media #%s set to %q for %s", item.ID, in.Mode, in.RecipientID)
	return nil
}
