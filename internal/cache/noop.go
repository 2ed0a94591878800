package cache

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) (string, error) {
	return "", nil
}

func (n *NoopCache) SetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, etag string, validUntil time.Time) {
}

func (n *NoopCache) DeleteSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	return nil
}

func (n *NoopCache) DeleteEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error {
	return nil
}
