package port

import (
	"context"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// NotificationPublisher pushes screenshot alerts to the conversation the
// media belongs to.
type NotificationPublisher interface {
	PublishScreenshotAlert(ctx context.Context, contextID, mediaID, actorID db.UUID) error
}
