package chat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/repository"
)

type Service interface {
	// Rooms
	CreateRoom(ctx context.Context, name, topic, creatorID string) (*domain.ChatRoom, error)
	ListRooms(ctx context.Context) ([]domain.ChatRoom, error)
	JoinRoom(ctx context.Context, roomID, userID string) error
	LeaveRoom(ctx context.Context, roomID, userID string) error

	// Messages
	PostMessage(ctx context.Context, roomID, userID, body string) (*domain.ChatMessage, error)
	GetMessages(ctx context.Context, roomID, userID string, before time.Time, limit int) ([]domain.ChatMessage, error)
}

type service struct {
	repo      repository.Chat
	users     repository.User
	notifier  notification.Service
	publisher *event.ResilientPublisher
}

// NewService creates the chat service. notifier may be nil, in which case
// mentions are not delivered; publisher may be nil to disable message events.
func NewService(repo repository.Chat, users repository.User, notifier notification.Service, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Room name constraints
const (
	minRoomNameLength = 3
	maxRoomNameLength = 100
	defaultPageSize   = 50
	maxPageSize       = 200
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]{2,50})`)

// CreateRoom creates a room with the creator as first member
func (s *service) CreateRoom(ctx context.Context, name, topic, creatorID string) (*domain.ChatRoom, error) {
	name = strings.TrimSpace(name)
	if len(name) < minRoomNameLength || len(name) > maxRoomNameLength {
		return nil, fmt.Errorf("%w: room name must be %d-%d characters",
			domain.ErrInvalidInput, minRoomNameLength, maxRoomNameLength)
	}

	if _, err := s.users.GetUserByID(ctx, creatorID); err != nil {
		return nil, err
	}

	room := &domain.ChatRoom{
		Name:      name,
		Topic:     strings.TrimSpace(topic),
		CreatedBy: creatorID,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Chat room created", "room_id", room.ID, "name", room.Name, "created_by", creatorID)
	return room, nil
}

// ListRooms returns all rooms
func (s *service) ListRooms(ctx context.Context) ([]domain.ChatRoom, error) {
	return s.repo.ListRooms(ctx)
}

// JoinRoom adds the user to the room
func (s *service) JoinRoom(ctx context.Context, roomID, userID string) error {
	if _, err := s.repo.GetRoom(ctx, roomID); err != nil {
		return err
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, roomID, userID)
}

// LeaveRoom removes the user from the room
func (s *service) LeaveRoom(ctx context.Context, roomID, userID string) error {
	return s.repo.RemoveMember(ctx, roomID, userID)
}

// PostMessage stores a message. The author must be a member and the body
// must fit the length cap. Mentioned members get a notification.
func (s *service) PostMessage(ctx context.Context, roomID, userID, body string) (*domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > domain.MaxChatMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	member, err := s.repo.IsMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotRoomMember
	}

	msg := &domain.ChatMessage{
		RoomID: roomID,
		UserID: userID,
		Body:   body,
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		evt := event.NewChatMessagePostedEvent(msg.RoomID, msg.ID, msg.UserID)
		s.publisher.Publish(ctx, evt) //nolint:errcheck
	}

	s.notifyMentions(ctx, msg)
	return msg, nil
}

// notifyMentions resolves @username tokens and notifies mentioned room members
func (s *service) notifyMentions(ctx context.Context, msg *domain.ChatMessage) {
	if s.notifier == nil {
		return
	}
	log := logger.FromContext(ctx)

	seen := make(map[string]bool)
	for _, match := range mentionPattern.FindAllStringSubmatch(msg.Body, -1) {
		username := match[1]
		if seen[username] {
			continue
		}
		seen[username] = true

		mentioned, err := s.users.GetUserByUsername(ctx, username)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				log.Warn("Failed to resolve mention", "username", username, "error", err)
			}
			continue
		}
		if mentioned.ID == msg.UserID {
			continue
		}

		// Only members of the room get mention notifications
		member, err := s.repo.IsMember(ctx, msg.RoomID, mentioned.ID)
		if err != nil || !member {
			continue
		}

		err = s.notifier.Notify(ctx, &domain.Notification{
			UserID:   mentioned.ID,
			Type:     domain.NotificationTypeChatMention,
			Severity: domain.SeverityInfo,
			Title:    "You were mentioned",
			Message:  truncate(msg.Body, 120),
			Data: map[string]interface{}{
				"room_id":    msg.RoomID,
				"message_id": msg.ID,
				"author_id":  msg.UserID,
			},
		})
		if err != nil {
			log.Warn("Failed to notify mention", "username", username, "error", err)
		}
	}
}

// GetMessages returns room history for a member, newest first
func (s *service) GetMessages(ctx context.Context, roomID, userID string, before time.Time, limit int) ([]domain.ChatMessage, error) {
	member, err := s.repo.IsMember(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotRoomMember
	}

	if before.IsZero() {
		before = time.Now()
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListMessages(ctx, roomID, before, limit)
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
