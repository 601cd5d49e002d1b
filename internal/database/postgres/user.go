package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/domain"
)

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and seeds an empty progress row
func (r *UserRepository) CreateUser(ctx context.Context, username, email, tierKey string) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var user domain.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, tier_key)
		VALUES ($1, $2, $3)
		RETURNING user_id, username, COALESCE(email, ''), tier_key, created_at, updated_at
	`, username, email, tierKey).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.TierKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO user_progress (user_id) VALUES ($1)`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed user progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = r.db.QueryRow(ctx, `
		SELECT user_id, username, COALESCE(email, ''), tier_key, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.TierKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, `
		SELECT user_id, username, COALESCE(email, ''), tier_key, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.TierKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// ListUserIDs returns the IDs of all registered users
func (r *UserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateUserTier sets the user's subscription tier
func (r *UserRepository) UpdateUserTier(ctx context.Context, userID, tierKey string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE users SET tier_key = $2, updated_at = NOW() WHERE user_id = $1
	`, id, tierKey)
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
