package media

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/klyra-app/ephemera-go/internal/port"
)

// eventsCacheTTL bounds how long a rendered audit view may be served from
// cache; every mutation invalidates it earlier anyway.
const eventsCacheTTL = time.Minute

type securityEventsListerSrv struct {
	repo   port.MediaRepository
	events port.EventRepository
	clock  port.Clock
}

// compile-time check: *securityEventsListerSrv must satisfy port.SecurityEventsLister
var _ port.SecurityEventsLister = (*securityEventsListerSrv)(nil)

// NewSecurityEventsLister constructs a SecurityEventsLister implementation.
func NewSecurityEventsLister(repo port.MediaRepository, events port.EventRepository, clock port.Clock) port.SecurityEventsLister {
	return &securityEventsListerSrv{repo: repo, events: events, clock: clock}
}

// ListSecurityEvents returns the media's full audit trail to its owner.
// Recipients get no visibility; the sender is the party who needs forensic
// insight into screenshot abuse.
func (s *securityEventsListerSrv) ListSecurityEvents(ctx context.Context, in port.ListSecurityEventsInput) (port.ListSecurityEventsOutput, error) {
	item, err := s.repo.GetByID(ctx, in.MediaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.ListSecurityEventsOutput{}, ErrMediaNotFound
		}
		return port.ListSecurityEventsOutput{}, err
	}
	if in.RequesterID != item.OwnerID {
		return port.ListSecurityEventsOutput{}, ErrNotAuthorized
	}

	events, err := s.events.ListByMedia(ctx, in.MediaID)
	if err != nil {
		return port.ListSecurityEventsOutput{}, err
	}

	return port.ListSecurityEventsOutput{
		ValidUntil: s.clock().Add(eventsCacheTTL),
		Events:     events,
	}, nil
}
