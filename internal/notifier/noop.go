package notifier

import (
	"context"
	"log"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type NoopNotifier struct{}

// compile-time check: *NoopNotifier must satisfy port.NotificationPublisher
var _ port.NotificationPublisher = (*NoopNotifier)(nil)

func NewNoop() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) PublishScreenshotAlert(ctx context.Context, contextID, mediaID, actorID db.UUID) error {
	log.Printf("screenshot alert for media #%s in conversation #%s (no publisher configured)", mediaID, contextID)
	return nil
}
