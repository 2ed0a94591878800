package port

import (
	"context"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// Cache provides caching for the owner-facing security event view. Entries
// are keyed per (media, requester) so a cached payload can never leak to a
// caller the use case would have rejected.
type Cache interface {
	GetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) ([]byte, error)
	GetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) (string, error)
	SetSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, data []byte, validUntil time.Time)
	SetEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID, etag string, validUntil time.Time)
	DeleteSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error
	DeleteEtagSecurityEvents(ctx context.Context, mediaID, requesterID db.UUID) error
}
