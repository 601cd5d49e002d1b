package repository

import (
	"context"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Chat defines persistence operations for rooms, membership and messages
type Chat interface {
	CreateRoom(ctx context.Context, room *domain.ChatRoom) error
	GetRoom(ctx context.Context, roomID string) (*domain.ChatRoom, error)
	ListRooms(ctx context.Context) ([]domain.ChatRoom, error)
	AddMember(ctx context.Context, roomID, userID string) error
	RemoveMember(ctx context.Context, roomID, userID string) error
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	InsertMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, roomID string, before time.Time, limit int) ([]domain.ChatMessage, error)
}
