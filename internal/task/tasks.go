package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeBurnMedia        = "media:burn"
	TypeNotifyScreenshot = "screenshot:notify"
)

type BurnMediaPayload struct {
	MediaID   string `json:"media_id"`
	ObjectKey string `json:"object_key"`
}

type NotifyScreenshotPayload struct {
	MediaID string `json:"media_id"`
	ActorID string `json:"actor_id"`
}

// NewBurnMediaTask creates an Asynq task for removing an expired media blob.
// The object key rides along because the soft-deleted row no longer has it.
func NewBurnMediaTask(mediaID, objectKey string) (*asynq.Task, error) {
	p := BurnMediaPayload{MediaID: mediaID, ObjectKey: objectKey}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal burn-media payload: %w", err)
	}
	return asynq.NewTask(TypeBurnMedia, data), nil
}

// ParseBurnMediaPayload parses the task payload to BurnMediaPayload.
func ParseBurnMediaPayload(t *asynq.Task) (BurnMediaPayload, error) {
	var p BurnMediaPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return BurnMediaPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewNotifyScreenshotTask creates an Asynq task for fanning out the first
// screenshot notification of an actor on a media.
func NewNotifyScreenshotTask(mediaID, actorID string) (*asynq.Task, error) {
	p := NotifyScreenshotPayload{MediaID: mediaID, ActorID: actorID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal notify-screenshot payload: %w", err)
	}
	return asynq.NewTask(TypeNotifyScreenshot, data), nil
}

// ParseNotifyScreenshotPayload parses the task payload to NotifyScreenshotPayload.
func ParseNotifyScreenshotPayload(t *asynq.Task) (NotifyScreenshotPayload, error) {
	var p NotifyScreenshotPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return NotifyScreenshotPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
