package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
)

type MediaRepository struct {
	db *sql.DB
}

// compile-time check: *MediaRepository must satisfy port.MediaRepository
var _ port.MediaRepository = (*MediaRepository)(nil)

func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create inserts the media row and its permission fan-out in one
// transaction so a media item never exists without its recipients.
func (r *MediaRepository) Create(ctx context.Context, media *model.MediaItem, perms []*model.Permission) error {
	log.Printf("creating database record for media #%s with %d permission(s)...", media.ID, len(perms))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const mediaQuery = `
      INSERT INTO media_items
        (id, context_id, owner_id, object_key, kind, timer_seconds, view_once, watermark_enabled, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	if _, err := tx.ExecContext(ctx, mediaQuery,
		media.ID, media.ContextID, media.OwnerID,
		media.ObjectKey, media.Kind,
		media.TimerSeconds, media.ViewOnce, media.WatermarkEnabled,
		media.CreatedAt,
	); err != nil {
		return err
	}

	const permQuery = `
      INSERT INTO permissions
        (id, media_id, sender_id, recipient_id, can_view, can_screenshot, revoked, view_count, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, p := range perms {
		if _, err := tx.ExecContext(ctx, permQuery,
			p.ID, p.MediaID, p.SenderID, p.RecipientID,
			p.CanView, p.CanScreenshot, p.Revoked, p.ViewCount,
			p.CreatedAt, p.UpdatedAt,
		); err != nil {
			return mapPermissionErr(err)
		}
	}

	return tx.Commit()
}

func (r *MediaRepository) GetByID(ctx context.Context, id db.UUID) (*model.MediaItem, error) {
	log.Printf("fetching media #%s from the database...", id)

	const query = `
      SELECT id, context_id, owner_id, object_key, kind, timer_seconds, view_once, watermark_enabled, created_at, deleted_at
      FROM media_items
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var media model.MediaItem
	if err := row.Scan(
		&media.ID, &media.ContextID, &media.OwnerID,
		&media.ObjectKey, &media.Kind,
		&media.TimerSeconds, &media.ViewOnce, &media.WatermarkEnabled,
		&media.CreatedAt, &media.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &media, nil
}

// Expire closes a media item in one transaction: the permission revoke, the
// optional soft delete, and the media_expired event land together or not at
// all. Revoked is monotonic, so a second close flips zero rows, rolls back,
// and writes nothing.
func (r *MediaRepository) Expire(ctx context.Context, in port.ExpireMediaInput) (int64, error) {
	log.Printf("expiring media #%s...", in.MediaID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	const revokeQuery = `
      UPDATE permissions
      SET revoked = 1, updated_at = ?
      WHERE media_id = ? AND revoked = 0
    `
	res, err := tx.ExecContext(ctx, revokeQuery, in.At, in.MediaID)
	if err != nil {
		return 0, err
	}
	revoked, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if revoked == 0 {
		return 0, nil
	}

	if in.SoftDelete {
		const deleteQuery = `
          UPDATE media_items
          SET object_key = NULL, deleted_at = ?
          WHERE id = ? AND deleted_at IS NULL
        `
		if _, err := tx.ExecContext(ctx, deleteQuery, in.At, in.MediaID); err != nil {
			return 0, fmt.Errorf("soft delete media #%s: %w", in.MediaID, err)
		}
	}

	ev := in.Event
	ev.Metadata["revoked_permissions"] = revoked
	if _, err := tx.ExecContext(ctx, insertEventQuery,
		ev.ID, ev.ContextID, ev.MediaID, ev.ActorID,
		ev.Type, ev.Metadata, ev.CreatedAt,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return revoked, nil
}
