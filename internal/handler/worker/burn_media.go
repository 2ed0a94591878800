package worker

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/task"
)

// BurnMediaHandler handles a burn-media task.
// It converts the incoming task payload to the input expected by
// the port.MediaBurner service and delegates the call.
func BurnMediaHandler(ctx context.Context, p task.BurnMediaPayload, svc port.MediaBurner) error {
	id, err := uuid.Parse(p.MediaID)
	if err != nil {
		log.Printf("❌  Invalid media ID %q: %v", p.MediaID, err)
		return err
	}

	in := port.BurnMediaInput{MediaID: db.UUID(id), ObjectKey: p.ObjectKey}
	if err := svc.BurnMedia(ctx, in); err != nil {
		log.Printf("❌  Failed to burn media #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully burned media #%s", id)
	return nil
}
