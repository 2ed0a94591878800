package port

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// HTTPRenderer mediates between the security events handler and the lister
// use case. It provides caching capabilities and returns both the JSON
// representation of the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderSecurityEvents returns the cached JSON result and its ETag if
	// available or executes the underlying use case and caches the output
	// otherwise.
	RenderSecurityEvents(ctx context.Context, lister SecurityEventsLister, mediaID, requesterID db.UUID) ([]byte, string, error)
}
