package worker

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/task"
)

// NotifyScreenshotHandler handles a notify-screenshot task.
// It converts the incoming task payload to the input expected by
// the port.ScreenshotNotifier service and delegates the call.
func NotifyScreenshotHandler(ctx context.Context, p task.NotifyScreenshotPayload, svc port.ScreenshotNotifier) error {
	mediaID, err := uuid.Parse(p.MediaID)
	if err != nil {
		log.Printf("❌  Invalid media ID %q: %v", p.MediaID, err)
		return err
	}
	actorID, err := uuid.Parse(p.ActorID)
	if err != nil {
		log.Printf("❌  Invalid actor ID %q: %v", p.ActorID, err)
		return err
	}

	in := port.NotifyScreenshotInput{MediaID: db.UUID(mediaID), ActorID: db.UUID(actorID)}
	if err := svc.NotifyScreenshot(ctx, in); err != nil {
		log.Printf("❌  Failed to notify screenshot on media #%s: %v", mediaID, err)
		return err
	}

	log.Printf("✅  Successfully notified screenshot on media #%s", mediaID)
	return nil
}
