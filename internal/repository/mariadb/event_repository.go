package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type EventRepository struct {
	db *sql.DB
}

// compile-time check: *EventRepository must satisfy port.EventRepository
var _ port.EventRepository = (*EventRepository)(nil)

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const insertEventQuery = `
      INSERT INTO security_events
        (id, context_id, media_id, actor_id, event_type, metadata, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `

func (r *EventRepository) Append(ctx context.Context, ev *model.SecurityEvent) error {
	log.Printf("appending %q event for media #%s...", ev.Type, ev.MediaID)

	_, err := r.db.ExecContext(ctx, insertEventQuery,
		ev.ID, ev.ContextID, ev.MediaID, ev.ActorID,
		ev.Type, ev.Metadata, ev.CreatedAt,
	)
	return err
}

// AppendScreenshot checks for a prior event of the same type by the same
// actor and inserts the new one inside a single transaction. The locking
// read keeps two concurrent duplicate fires from both being "first".
func (r *EventRepository) AppendScreenshot(ctx context.Context, ev *model.SecurityEvent) (bool, error) {
	log.Printf("appending %q event for media #%s with dedup check...", ev.Type, ev.MediaID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	const countQuery = `
      SELECT COUNT(*)
      FROM security_events
      WHERE media_id = ? AND actor_id = ? AND event_type = ?
      FOR UPDATE
    `
	var prior int
	if err := tx.QueryRowContext(ctx, countQuery, ev.MediaID, ev.ActorID, ev.Type).Scan(&prior); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, insertEventQuery,
		ev.ID, ev.ContextID, ev.MediaID, ev.ActorID,
		ev.Type, ev.Metadata, ev.CreatedAt,
	); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return prior == 0, nil
}

func (r *EventRepository) ListByMedia(ctx context.Context, mediaID db.UUID) ([]model.SecurityEvent, error) {
	log.Printf("listing security events for media #%s...", mediaID)

	const query = `
      SELECT id, context_id, media_id, actor_id, event_type, metadata, created_at
      FROM security_events
      WHERE media_id = ?
      ORDER BY created_at, id
    `
	rows, err := r.db.QueryContext(ctx, query, mediaID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.SecurityEvent
	for rows.Next() {
		var ev model.SecurityEvent
		if err := rows.Scan(
			&ev.ID, &ev.ContextID, &ev.MediaID, &ev.ActorID,
			&ev.Type, &ev.Metadata, &ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
