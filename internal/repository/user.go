package repository

import (
	"context"

	"github.com/farmfit/farmfit/internal/domain"
)

// User defines persistence operations for user accounts
type User interface {
	CreateUser(ctx context.Context, username, email, tierKey string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	UpdateUserTier(ctx context.Context, userID, tierKey string) error
}
