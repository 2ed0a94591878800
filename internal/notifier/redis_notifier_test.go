package notifier

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/redis/go-redis/v9"
)

func TestPublishScreenshotAlert(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	n := &RedisNotifier{client: rdb}

	contextID := db.NewUUID()
	mediaID := db.NewUUID()
	actorID := db.NewUUID()

	sub := rdb.Subscribe(context.Background(), channelKey(contextID))
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := n.PublishScreenshotAlert(context.Background(), contextID, mediaID, actorID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, err := sub.ReceiveMessage(context.Background())
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	var alert screenshotAlert
	if err := json.Unmarshal([]byte(msg.Payload), &alert); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if alert.Type != "screenshot_taken" {
		t.Errorf("type = %q; want screenshot_taken", alert.Type)
	}
	if alert.MediaID != mediaID.String() || alert.ActorID != actorID.String() {
		t.Errorf("alert = %+v; want media %s actor %s", alert, mediaID, actorID)
	}
}
