package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/model"
	"github.com/klyra-app/ephemera-go/internal/port"
	mediaService "github.com/klyra-app/ephemera-go/internal/usecase/media"
)

// mysqlDupEntry is the MySQL error number for a unique key violation.
const mysqlDupEntry = 1062

type PermissionRepository struct {
	db *sql.DB
}

// compile-time check: *PermissionRepository must satisfy port.PermissionRepository
var _ port.PermissionRepository = (*PermissionRepository)(nil)

func NewPermissionRepository(db *sql.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, perm *model.Permission) error {
	log.Printf("creating permission row for media #%s, recipient %s...", perm.MediaID, perm.RecipientID)

	const query = `
      INSERT INTO permissions
        (id, media_id, sender_id, recipient_id, can_view, can_screenshot, revoked, view_count, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	if _, err := r.db.ExecContext(ctx, query,
		perm.ID, perm.MediaID, perm.SenderID, perm.RecipientID,
		perm.CanView, perm.CanScreenshot, perm.Revoked, perm.ViewCount,
		perm.CreatedAt, perm.UpdatedAt,
	); err != nil {
		return mapPermissionErr(err)
	}
	return nil
}

func (r *PermissionRepository) Find(ctx context.Context, mediaID, recipientID db.UUID) (*model.Permission, error) {
	const query = `
      SELECT id, media_id, sender_id, recipient_id, can_view, can_screenshot, revoked, view_count,
             opened_at, expires_at, allowed_until, last_viewed_at, created_at, updated_at
      FROM permissions
      WHERE media_id = ? AND recipient_id = ?
    `
	row := r.db.QueryRowContext(ctx, query, mediaID, recipientID)
	var p model.Permission
	if err := row.Scan(
		&p.ID, &p.MediaID, &p.SenderID, &p.RecipientID,
		&p.CanView, &p.CanScreenshot, &p.Revoked, &p.ViewCount,
		&p.OpenedAt, &p.ExpiresAt, &p.AllowedUntil, &p.LastViewedAt,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// ConsumeOpen applies one open in a single transaction: a guarded update
// increments the view, then the media_opened event is written against the
// resulting view count. The row must still be viewable for the increment to
// land, and opened_at/expires_at only fill in when empty. Losing the race
// surfaces as zero affected rows and rolls back, never as a second timer
// start, an extra view past the view-once limit, or an orphaned audit event.
func (r *PermissionRepository) ConsumeOpen(ctx context.Context, in port.ConsumeOpenInput) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	const update = `
      UPDATE permissions
      SET view_count     = view_count + 1,
          last_viewed_at = ?,
          opened_at      = COALESCE(opened_at, ?),
          expires_at     = COALESCE(expires_at, ?),
          updated_at     = ?
      WHERE media_id = ? AND recipient_id = ?
        AND can_view = 1 AND revoked = 0
        AND (expires_at IS NULL OR expires_at > ?)
        AND (? = 0 OR view_count < 1)
    `
	res, err := tx.ExecContext(ctx, update,
		in.Now, in.Now, in.ExpiresAt, in.Now,
		in.MediaID, in.RecipientID,
		in.Now, in.ViewOnce,
	)
	if err != nil {
		return false, 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}
	if n == 0 {
		return false, 0, nil
	}

	var viewCount int
	const readBack = "SELECT view_count FROM permissions WHERE media_id = ? AND recipient_id = ?"
	if err := tx.QueryRowContext(ctx, readBack, in.MediaID, in.RecipientID).Scan(&viewCount); err != nil {
		return false, 0, err
	}

	ev := in.Event
	ev.Metadata["view_count"] = viewCount
	if _, err := tx.ExecContext(ctx, insertEventQuery,
		ev.ID, ev.ContextID, ev.MediaID, ev.ActorID,
		ev.Type, ev.Metadata, ev.CreatedAt,
	); err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return true, viewCount, nil
}

func (r *PermissionRepository) SetScreenshot(ctx context.Context, mediaID, recipientID db.UUID, canScreenshot bool, allowedUntil *time.Time) error {
	log.Printf("setting screenshot right on media #%s for %s to %t...", mediaID, recipientID, canScreenshot)

	const query = `
      UPDATE permissions
      SET can_screenshot = ?, allowed_until = ?, updated_at = CURRENT_TIMESTAMP
      WHERE media_id = ? AND recipient_id = ?
    `
	_, err := r.db.ExecContext(ctx, query, canScreenshot, allowedUntil, mediaID, recipientID)
	return err
}

func mapPermissionErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry {
		return mediaService.ErrPermissionExists
	}
	return err
}
