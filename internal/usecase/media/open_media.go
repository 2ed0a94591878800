package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type mediaOpenerSrv struct {
	repo   port.MediaRepository
	perms  port.PermissionRepository
	strg   port.Storage
	cache  port.Cache
	genID  port.UUIDGen
	clock  port.Clock
	bucket string
	ttl    time.Duration
}

// compile-time check: *mediaOpenerSrv must satisfy port.MediaOpener
var _ port.MediaOpener = (*mediaOpenerSrv)(nil)

// NewMediaOpener constructs a MediaOpener implementation. ttl caps the
// lifetime of the presigned locators it hands out.
func NewMediaOpener(repo port.MediaRepository, perms port.PermissionRepository, strg port.Storage, cache port.Cache, genID port.UUIDGen, clock port.Clock, bucket string, ttl time.Duration) port.MediaOpener {
	return &mediaOpenerSrv{repo: repo, perms: perms, strg: strg, cache: cache, genID: genID, clock: clock, bucket: bucket, ttl: ttl}
}

// OpenMedia decides whether the viewer may see the media right now. The
// owner always may (a pure read that never touches permission state); a
// recipient's open consumes view state atomically and arms the timer on the
// first successful call only.
func (s *mediaOpenerSrv) OpenMedia(ctx context.Context, in port.OpenMediaInput) (port.OpenMediaOutput, error) {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.OpenMediaOutput{}, ErrMediaNotFound
		}
		return port.OpenMediaOutput{}, err
	}
	if item.Deleted() || item.ObjectKey == nil {
		return port.OpenMediaOutput{}, NewAccessError(AccessDeleted)
	}

	now := s.clock()

	if in.ViewerID == item.OwnerID {
		return s.openAsOwner(ctx, item)
	}

	perm, err := s.perms.Find(ctx, in.MediaID, in.ViewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.OpenMediaOutput{}, NewAccessError(AccessNoPermission)
		}
		return port.OpenMediaOutput{}, err
	}
	if reason, denied := denyReason(item, perm, now); denied {
		return port.OpenMediaOutput{}, NewAccessError(reason)
	}

	var candidateExpiry *time.Time
	if perm.OpenedAt == nil && item.TimerSeconds != nil {
		// DATETIME(6) columns keep microseconds; truncate so the value we
		// hand back equals the value a later read returns
		exp := now.Add(time.Duration(*item.TimerSeconds) * time.Second).Truncate(time.Microsecond)
		candidateExpiry = &exp
	}
	effectiveExpiry := perm.ExpiresAt
	if effectiveExpiry == nil {
		effectiveExpiry = candidateExpiry
	}

	allowScreenshot := perm.ScreenshotAllowed(now)
	out := port.OpenMediaOutput{
		AllowScreenshot: allowScreenshot,
		ShouldBlur:      !allowScreenshot,
		ExpiresAt:       effectiveExpiry,
		ViewOnce:        item.ViewOnce,
	}
	if item.WatermarkEnabled {
		wm := watermarkText(in.ViewerID.String(), now)
		out.WatermarkText = &wm
	}

	// presign before consuming the view: a locator that is never returned
	// costs nothing, but a consumed view that is never delivered burns a
	// view-once open the recipient can never retry
	ttl := s.ttl
	if effectiveExpiry != nil {
		if remaining := effectiveExpiry.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	out.URL, err = s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, *item.ObjectKey, ttl)
	if err != nil {
		return port.OpenMediaOutput{}, err
	}

	applied, viewCount, err := s.perms.ConsumeOpen(ctx, port.ConsumeOpenInput{
		MediaID:     in.MediaID,
		RecipientID: in.ViewerID,
		Now:         now,
		ExpiresAt:   candidateExpiry,
		ViewOnce:    item.ViewOnce,
		Event: &model.SecurityEvent{
			ID:        s.genID(),
			ContextID: item.ContextID,
			MediaID:   item.ID,
			ActorID:   in.ViewerID,
			Type:      model.EventMediaOpened,
			Metadata:  model.EventMetadata{},
			CreatedAt: now,
		},
	})
	if err != nil {
		return port.OpenMediaOutput{}, err
	}
	if !applied {
		// lost a race between the read above and the guarded update;
		// re-read and classify the loss instead of guessing
		return port.OpenMediaOutput{}, s.classifyLostOpen(ctx, item, in.ViewerID, now)
	}
	out.ViewCount = viewCount
	invalidateAudit(ctx, s.cache, item)

	log.Printf("media #%s opened by %s (view %d)", item.ID, in.ViewerID, viewCount)
	return out, nil
}

// openAsOwner is the lock-free owner path: no consumption, no timer, no
// permission lookup.
func (s *mediaOpenerSrv) openAsOwner(ctx context.Context, item *model.MediaItem) (port.OpenMediaOutput, error) {
	url, err := s.strg.GeneratePresignedDownloadURL(ctx, s.bucket, *item.ObjectKey, s.ttl)
	if err != nil {
		return port.OpenMediaOutput{}, err
	}
	return port.OpenMediaOutput{
		URL:             url,
		AllowScreenshot: true,
		ShouldBlur:      false,
		ViewOnce:        item.ViewOnce,
	}, nil
}

// denyReason applies the access checks in precedence order against a
// permission snapshot. The default on any uncertainty is deny.
func denyReason(item *model.MediaItem, perm *model.Permission, now time.Time) (AccessReason, bool) {
	switch {
	case !perm.CanView:
		return AccessNoPermission, true
	case perm.Revoked:
		return AccessRevoked, true
	case perm.Expired(now):
		return AccessExpired, true
	case item.ViewOnce && perm.ViewCount >= 1:
		return AccessViewOnceConsumed, true
	}
	return "", false
}

// classifyLostOpen re-reads the row after a guarded update matched nothing
// and maps the state to the deny reason the caller should see.
func (s *mediaOpenerSrv) classifyLostOpen(ctx context.Context, item *model.MediaItem, viewerID db.UUID, now time.Time) error {
	perm, err := s.perms.Find(ctx, item.ID, viewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewAccessError(AccessNoPermission)
		}
		return err
	}
	if reason, denied := denyReason(item, perm, now); denied {
		return NewAccessError(reason)
	}
	// the row looks viewable again, which a monotonic row cannot do; deny
	return NewAccessError(AccessNoPermission)
}

func watermarkText(viewer string, now time.Time) string {
	return fmt.Sprintf("%s @ %s", viewer, now.UTC().Format("2006-01-02 15:04:05 UTC"))
}
