package media

import (
	"context"
	"log"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type mediaCreatorSrv struct {
	repo   port.MediaRepository
	events port.EventRepository
	genID  port.UUIDGen
	clock  port.Clock
}

// compile-time check: *mediaCreatorSrv must satisfy port.MediaCreator
var _ port.MediaCreator = (*mediaCreatorSrv)(nil)

// NewMediaCreator constructs a MediaCreator implementation.
func NewMediaCreator(repo port.MediaRepository, events port.EventRepository, genID port.UUIDGen, clock port.Clock) port.MediaCreator {
	return &mediaCreatorSrv{repo: repo, events: events, genID: genID, clock: clock}
}

// CreateMedia registers the media item and one permission row per recipient
// in a single transaction, then records the creation in the audit log.
func (s *mediaCreatorSrv) CreateMedia(ctx context.Context, in port.CreateMediaInput) (port.CreateMediaOutput, error) {
	if in.TimerSeconds != nil && *in.TimerSeconds <= 0 {
		return port.CreateMediaOutput{}, ErrInvalidTimer
	}

	now := s.clock()
	objectKey := in.ObjectKey
	item := &model.MediaItem{
		ID:               s.genID(),
		ContextID:        in.ContextID,
		OwnerID:          in.OwnerID,
		ObjectKey:        &objectKey,
		Kind:             in.Kind,
		TimerSeconds:     in.TimerSeconds,
		ViewOnce:         in.ViewOnce,
		WatermarkEnabled: in.WatermarkEnabled,
		CreatedAt:        now,
	}

	perms := make([]*model.Permission, 0, len(in.Recipients))
	permIDs := make(map[string]db.UUID, len(in.Recipients))
	for _, recipient := range in.Recipients {
		if recipient == in.OwnerID {
			return port.CreateMediaOutput{}, ErrInvalidRecipient
		}
		perm := &model.Permission{
			ID:          s.genID(),
			MediaID:     item.ID,
			SenderID:    in.OwnerID,
			RecipientID: recipient,
			CanView:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		perms = append(perms, perm)
		permIDs[recipient.String()] = perm.ID
	}

	if err := s.repo.Create(ctx, item, perms); err != nil {
		return port.CreateMediaOutput{}, err
	}

	ev := &model.SecurityEvent{
		ID:        s.genID(),
		ContextID: in.ContextID,
		MediaID:   item.ID,
		ActorID:   in.OwnerID,
		Type:      model.EventMediaCreated,
		Metadata:  model.EventMetadata{"recipients": len(perms), "view_once": in.ViewOnce},
		CreatedAt: now,
	}
	if err := s.events.Append(ctx, ev); err != nil {
		return port.CreateMediaOutput{}, err
	}

	log.Printf("created media #%s with %d permission(s)", item.ID, len(perms))
	return port.CreateMediaOutput{MediaID: item.ID, PermissionIDs: permIDs}, nil
}
