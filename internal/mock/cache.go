package mock

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	EventsOut []byte

	// etag values
	EtagEvents string

	// errors
	GetEventsErr     error
	GetEtagEventsErr error
	DelEventsErr     error
	DelEtagEventsErr error

	// call flags
	GetEventsCalled     bool
	GetEtagEventsCalled bool
	SetEventsCalled     bool
	SetEtagEventsCalled bool
	DelEventsCalled     bool
	DelEtagEventsCalled bool
}

func (c *Cache) GetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) ([]byte, error) {
	c.GetEventsCalled = true
	if c.GetEventsErr != nil {
		return nil, c.GetEventsErr
	}
	return c.EventsOut, nil
}

func (c *Cache) GetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) (string, error) {
	c.GetEtagEventsCalled = true
	if c.GetEtagEventsErr != nil {
		return "", c.GetEtagEventsErr
	}
	return c.EtagEvents, nil
}

func (c *Cache) SetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, data []byte, validUntil time.Time) {
	c.SetEventsCalled = true
	c.EventsOut = data
}

func (c *Cache) SetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, etag string, validUntil time.Time) {
	c.SetEtagEventsCalled = true
	c.EtagEvents = etag
}

func (c *Cache) DeleteSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	c.DelEventsCalled = true
	return c.DelEventsErr
}

func (c *Cache) DeleteEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	c.DelEtagEventsCalled = true
	return c.DelEtagEventsErr
}
