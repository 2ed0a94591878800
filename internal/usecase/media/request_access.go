package media

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type accessRequesterSrv struct {
	repo   port.MediaRepository
	perms  port.PermissionRepository
	events port.EventRepository
	cache  port.Cache
	genID  port.UUIDGen
	clock  port.Clock
}

// compile-time check: *accessRequesterSrv must satisfy port.AccessRequester
var _ port.AccessRequester = (*accessRequesterSrv)(nil)

// NewAccessRequester constructs an AccessRequester implementation.
func NewAccessRequester(repo port.MediaRepository, perms port.PermissionRepository, events port.EventRepository, cache port.Cache, genID port.UUIDGen, clock port.Clock) port.AccessRequester {
	return &accessRequesterSrv{repo: repo, perms: perms, events: events, cache: cache, genID: genID, clock: clock}
}

// RequestScreenshotAccess records a recipient's plea for screenshot rights.
// It changes no permission bit; the owner learns about it through the
// messaging collaborator surfacing the audit event.
func (s *accessRequesterSrv) RequestScreenshotAccess(ctx context.Context, in port.RequestScreenshotAccessInput) error {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}
	if in.RequesterID == item.OwnerID {
		// self-request is meaningless, the owner already screenshots freely
		return ErrNotAuthorized
	}
	if _, err := s.perms.Find(ctx, in.MediaID, in.RequesterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotAuthorized
		}
		return err
	}

	ev := &model.SecurityEvent{
		ID:        s.genID(),
		ContextID: item.ContextID,
		MediaID:   item.ID,
		ActorID:   in.RequesterID,
		Type:      model.EventAccessRequested,
		CreatedAt: s.clock(),
	}
	if err := s.events.Append(ctx, ev); err != nil {
		return err
	}
	invalidateAudit(ctx, s.cache, item)

	log.Printf("screenshot access requested on media #%s by %s", item.ID, in.RequesterID)
	return nil
}
