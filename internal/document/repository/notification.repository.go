package repository

import (
	"context"
	"database/sql"

	"livedocs/internal/document/model"
	"livedocs/pkg/logger"
)

// NotificationRepository persists the per-user inbox in the notifications
// table.
type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n model.Notification) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO notifications (id, target_email, kind, room_id, role, title, updated_by, avatar, email, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10)`,
		n.ID, n.TargetEmail, n.Kind, n.RoomID,
		n.Activity.Role, n.Activity.Title, n.Activity.UpdatedBy, n.Activity.Avatar, n.Activity.Email,
		n.CreatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert notification for %s: %v", n.TargetEmail, err)
	}
	return err
}

func (r *NotificationRepository) ListByTarget(ctx context.Context, targetEmail string) ([]model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, target_email, kind, room_id, role, title, updated_by, avatar, email, read, created_at
		 FROM notifications WHERE target_email = $1 ORDER BY created_at DESC`, targetEmail)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notifications for %s: %v", targetEmail, err)
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.TargetEmail, &n.Kind, &n.RoomID,
			&n.Activity.Role, &n.Activity.Title, &n.Activity.UpdatedBy, &n.Activity.Avatar, &n.Activity.Email,
			&n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, targetEmail string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND target_email = $2`, id, targetEmail)
	if err != nil {
		logger.Sugar.Errorf("Failed to mark notification %s read: %v", id, err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
