package repository

import (
	"context"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Notification defines persistence operations for notifications
type Notification interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	GetNotification(ctx context.Context, id string) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string, readAt time.Time) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
