package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type RedisNotifier struct {
	client *redis.Client
}

// compile-time check: *RedisNotifier must satisfy port.NotificationPublisher
var _ port.NotificationPublisher = (*RedisNotifier)(nil)

func NewRedisNotifier(addr, password string) *RedisNotifier {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &RedisNotifier{client: rdb}
}

type screenshotAlert struct {
	Type    string `json:"type"`
	MediaID string `json:"media_id"`
	ActorID string `json:"actor_id"`
}

// PublishScreenshotAlert pushes a system message onto the conversation's
// channel so connected clients can surface "X took a screenshot".
func (n *RedisNotifier) PublishScreenshotAlert(ctx context.Context, contextID, mediaID, actorID db.UUID) error {
	log.Printf("publishing screenshot alert for media #%s to conversation #%s...", mediaID, contextID)

	data, err := json.Marshal(screenshotAlert{
		Type:    "screenshot_taken",
		MediaID: mediaID.String(),
		ActorID: actorID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	if err := n.client.Publish(ctx, channelKey(contextID), data).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func channelKey(contextID db.UUID) string {
	return "conversation:" + contextID.String()
}
