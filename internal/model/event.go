package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klyra-app/ephemera-go/internal/db"
)

// EventType enumerates the audit event kinds this subsystem records.
type EventType string

const (
	EventMediaCreated        EventType = "media_created"
	EventMediaOpened         EventType = "media_opened"
	EventMediaExpired        EventType = "media_expired"
	EventPermissionGranted   EventType = "permission_granted"
	EventPermissionRevoked   EventType = "permission_revoked"
	EventAccessRequested     EventType = "access_requested"
	EventScreenshotTaken     EventType = "screenshot_taken"
	EventScreenshotAttempted EventType = "screenshot_attempted"
)

// EventMetadata is the optional structured payload of a security event,
// stored as a JSON column.
type EventMetadata map[string]any

func (m EventMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal EventMetadata: %w", err)
	}
	return b, nil
}

func (m *EventMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("EventMetadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("unmarshal EventMetadata: %w", err)
	}
	return nil
}

// SecurityEvent is one append-only audit record. Rows are immutable once
// written; ordering is creation-time per media.
type SecurityEvent struct {
	ID        db.UUID       `json:"id"`
	ContextID db.UUID       `json:"context_id"`
	MediaID   db.UUID       `json:"media_id"`
	ActorID   db.UUID       `json:"actor_id"`
	Type      EventType     `json:"type"`
	Metadata  EventMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
