package media

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type mediaCloserSrv struct {
	repo       port.MediaRepository
	perms      port.PermissionRepository
	cache      port.Cache
	dispatcher port.TaskDispatcher
	genID      port.UUIDGen
	clock      port.Clock
}

// compile-time check: *mediaCloserSrv must satisfy port.MediaCloser
var _ port.MediaCloser = (*mediaCloserSrv)(nil)

// NewMediaCloser constructs a MediaCloser implementation.
func NewMediaCloser(repo port.MediaRepository, perms port.PermissionRepository, cache port.Cache, dispatcher port.TaskDispatcher, genID port.UUIDGen, clock port.Clock) port.MediaCloser {
	return &mediaCloserSrv{repo: repo, perms: perms, cache: cache, dispatcher: dispatcher, genID: genID, clock: clock}
}

// CloseMedia is the explicit expiry trigger. One transaction revokes every
// permission row, soft-deletes the registry row when the item is ephemeral,
// and records the expiry event; only then is the blob removal enqueued. A
// second close finds nothing left to revoke and is a no-op.
func (s *mediaCloserSrv) CloseMedia(ctx context.Context, in port.CloseMediaInput) error {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.authorizeActor(ctx, item, in.ActorID); err != nil {
		return err
	}

	now := s.clock()
	softDelete := item.Ephemeral() && !item.Deleted()
	revoked, err := s.repo.Expire(ctx, port.ExpireMediaInput{
		MediaID:    in.MediaID,
		At:         now,
		SoftDelete: softDelete,
		Event: &model.SecurityEvent{
			ID:        s.genID(),
			ContextID: item.ContextID,
			MediaID:   item.ID,
			ActorID:   in.ActorID,
			Type:      model.EventMediaExpired,
			Metadata:  model.EventMetadata{},
			CreatedAt: now,
		},
	})
	if err != nil {
		return err
	}
	if revoked == 0 {
		// already closed; stay idempotent, no duplicate side effects
		return nil
	}

	if softDelete && item.ObjectKey != nil {
		// the logical expiry is committed; blob removal is eventual and
		// retried by the worker, failures here only get logged
		if err := s.dispatcher.EnqueueBurnMedia(ctx, item.ID, *item.ObjectKey); err != nil {
			log.Printf("failed to enqueue burn for media #%s: %v", item.ID, err)
		}
	}
	invalidateAudit(ctx, s.cache, item)

	log.Printf("media #%s closed by %s, %d permission(s) revoked", item.ID, in.ActorID, revoked)
	return nil
}

// authorizeActor accepts the owner or any permission holder, revoked or not.
func (s *mediaCloserSrv) authorizeActor(ctx context.Context, item *model.MediaItem, actorID db.UUID) error {
	if actorID == item.OwnerID {
		return nil
	}
	if _, err := s.perms.Find(ctx, item.ID, actorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotAuthorized
		}
		return err
	}
	return nil
}
