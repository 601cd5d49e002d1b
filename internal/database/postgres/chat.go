package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/domain"
)

// ChatRepository implements the chat repository for PostgreSQL
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateRoom inserts a room and adds the creator as its first member
func (r *ChatRepository) CreateRoom(ctx context.Context, room *domain.ChatRoom) error {
	creatorID, err := parseUserID(room.CreatedBy)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx, `
		INSERT INTO chat_rooms (name, topic, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, room.Name, room.Topic, creatorID).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO chat_members (room_id, user_id) VALUES ($1, $2)
	`, room.ID, creatorID)
	if err != nil {
		return fmt.Errorf("failed to add creator to room: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit room creation: %w", err)
	}
	return nil
}

// GetRoom retrieves a room by ID
func (r *ChatRepository) GetRoom(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	id, err := parseID(roomID, "room")
	if err != nil {
		return nil, err
	}

	var room domain.ChatRoom
	err = r.db.QueryRow(ctx, `
		SELECT id, name, topic, created_by, created_at
		FROM chat_rooms
		WHERE id = $1
	`, id).Scan(&room.ID, &room.Name, &room.Topic, &room.CreatedBy, &room.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// ListRooms returns all rooms ordered by name
func (r *ChatRepository) ListRooms(ctx context.Context) ([]domain.ChatRoom, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, topic, created_by, created_at
		FROM chat_rooms
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.ChatRoom
	for rows.Next() {
		var room domain.ChatRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.Topic, &room.CreatedBy, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// AddMember joins a user to a room. Re-joining is a no-op.
func (r *ChatRepository) AddMember(ctx context.Context, roomID, userID string) error {
	rid, err := parseID(roomID, "room")
	if err != nil {
		return err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO chat_members (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (room_id, user_id) DO NOTHING
	`, rid, uid)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a room
func (r *ChatRepository) RemoveMember(ctx context.Context, roomID, userID string) error {
	rid, err := parseID(roomID, "room")
	if err != nil {
		return err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		DELETE FROM chat_members WHERE room_id = $1 AND user_id = $2
	`, rid, uid)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotRoomMember
	}
	return nil
}

// IsMember reports whether the user belongs to the room
func (r *ChatRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	rid, err := parseID(roomID, "room")
	if err != nil {
		return false, err
	}
	uid, err := parseUserID(userID)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat_members WHERE room_id = $1 AND user_id = $2
		)
	`, rid, uid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// InsertMessage stores a message and fills in its generated ID and timestamp
func (r *ChatRepository) InsertMessage(ctx context.Context, msg *domain.ChatMessage) error {
	rid, err := parseID(msg.RoomID, "room")
	if err != nil {
		return err
	}
	uid, err := parseUserID(msg.UserID)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (room_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, rid, uid, msg.Body).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessages returns messages in a room older than the cursor, newest first
func (r *ChatRepository) ListMessages(ctx context.Context, roomID string, before time.Time, limit int) ([]domain.ChatMessage, error) {
	rid, err := parseID(roomID, "room")
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.room_id, m.user_id, m.body, m.created_at, u.username
		FROM chat_messages m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.room_id = $1 AND m.created_at < $2
		ORDER BY m.created_at DESC
		LIMIT $3
	`, rid, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.UserID, &m.Body, &m.CreatedAt, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
