package media

import (
	"context"
	"log"

	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

// invalidateAudit drops the owner's cached security-event view after a
// mutation. Cache failures never fail the operation that caused them.
func invalidateAudit(ctx context.Context, cache port.Cache, item *model.MediaItem) {
	if err := cache.DeleteSecurityEvents(ctx, item.ID, item.OwnerID); err != nil {
		log.Printf("failed deleting events cache for media #%s: %v", item.ID, err)
	}
	if err := cache.DeleteEtagSecurityEvents(ctx, item.ID, item.OwnerID); err != nil {
		log.Printf("failed deleting events etag cache for media #%s: %v", item.ID, err)
	}
}
