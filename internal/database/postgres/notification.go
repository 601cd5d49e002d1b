package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/domain"
)

// NotificationRepository implements the notification repository for PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification inserts a notification record and fills in the
// generated ID and timestamps on the passed struct.
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	userID, err := parseUserID(n.UserID)
	if err != nil {
		return err
	}

	var dataRaw []byte
	if n.Data != nil {
		dataRaw, err = json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, severity, title, message, data, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, userID, n.Type, n.Severity, n.Title, n.Message, dataRaw, n.ExpiresAt).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetNotification retrieves a single notification by ID
func (r *NotificationRepository) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	nid, err := parseID(id, "notification")
	if err != nil {
		return nil, err
	}

	var (
		n       domain.Notification
		dataRaw []byte
	)
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, type, severity, title, message, data, read, read_at, created_at, expires_at
		FROM notifications
		WHERE id = $1
	`, nid).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Severity, &n.Title, &n.Message,
		&dataRaw, &n.Read, &n.ReadAt, &n.CreatedAt, &n.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	if len(dataRaw) > 0 {
		if err := json.Unmarshal(dataRaw, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}
	return &n, nil
}

// ListForUser returns a user's unexpired notifications, unread first and
// newest first within each group
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, severity, title, message, data, read, read_at, created_at, expires_at
		FROM notifications
		WHERE user_id = $1
		  AND expires_at > NOW()
		  AND (NOT $2 OR NOT read)
		ORDER BY read, created_at DESC
		LIMIT $3
	`, uid, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var (
			n       domain.Notification
			dataRaw []byte
		)
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Severity, &n.Title, &n.Message,
			&dataRaw, &n.Read, &n.ReadAt, &n.CreatedAt, &n.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(dataRaw) > 0 {
			if err := json.Unmarshal(dataRaw, &n.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	nid, err := parseID(id, "notification")
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET read = TRUE, read_at = $2 WHERE id = $1
	`, nid, readAt)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// PurgeExpired deletes notifications past their expiry
func (r *NotificationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM notifications WHERE expires_at <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
