package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
)

// fakeChatRepo is an in-memory repository for service tests
type fakeChatRepo struct {
	mu       sync.Mutex
	rooms    map[string]domain.ChatRoom
	members  map[string]map[string]bool
	messages []domain.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		rooms:   make(map[string]domain.ChatRoom),
		members: make(map[string]map[string]bool),
	}
}

func (f *fakeChatRepo) CreateRoom(_ context.Context, room *domain.ChatRoom) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room.ID = uuid.NewString()
	room.CreatedAt = time.Now()
	f.rooms[room.ID] = *room
	f.members[room.ID] = map[string]bool{room.CreatedBy: true}
	return nil
}

func (f *fakeChatRepo) GetRoom(_ context.Context, roomID string) (*domain.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return &room, nil
}

func (f *fakeChatRepo) ListRooms(_ context.Context) ([]domain.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChatRoom
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeChatRepo) AddMember(_ context.Context, roomID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[roomID][userID] = true
	return nil
}

func (f *fakeChatRepo) RemoveMember(_ context.Context, roomID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.members[roomID][userID] {
		return domain.ErrNotRoomMember
	}
	delete(f.members[roomID], userID)
	return nil
}

func (f *fakeChatRepo) IsMember(_ context.Context, roomID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[roomID][userID], nil
}

func (f *fakeChatRepo) InsertMessage(_ context.Context, msg *domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, roomID string, before time.Time, limit int) ([]domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChatMessage
	for _, m := range f.messages {
		if m.RoomID == roomID && m.CreatedAt.Before(before) && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeUserDirectory resolves users by ID and username
type fakeUserDirectory struct {
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
}

func newFakeUserDirectory(users ...*domain.User) *fakeUserDirectory {
	d := &fakeUserDirectory{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
	for _, u := range users {
		d.byID[u.ID] = u
		d.byUsername[u.Username] = u
	}
	return d
}

func (d *fakeUserDirectory) CreateUser(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}

func (d *fakeUserDirectory) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (d *fakeUserDirectory) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := d.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (d *fakeUserDirectory) ListUserIDs(context.Context) ([]string, error) { return nil, nil }

func (d *fakeUserDirectory) UpdateUserTier(context.Context, string, string) error { return nil }

// fakeNotifier records notifications it was asked to send
type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, notif *domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *notif)
	return nil
}

func (n *fakeNotifier) ListNotifications(context.Context, string, bool, int) ([]domain.Notification, error) {
	return nil, nil
}
func (n *fakeNotifier) MarkRead(context.Context, string) error      { return nil }
func (n *fakeNotifier) PurgeExpired(context.Context) (int64, error) { return 0, nil }
func (n *fakeNotifier) Shutdown(context.Context) error              { return nil }

var (
	alice = &domain.User{ID: uuid.NewString(), Username: "alice"}
	bob   = &domain.User{ID: uuid.NewString(), Username: "bob"}
)

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewService(repo, newFakeUserDirectory(alice), nil, nil)

	room, err := svc.CreateRoom(ctx, "hemp-growers", "CBD talk", alice.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, room.ID)

	member, err := repo.IsMember(ctx, room.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, member)

	_, err = svc.CreateRoom(ctx, "ab", "", alice.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateRoom(ctx, "valid-name", "", uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, notifier *fakeNotifier) (Service, *domain.ChatRoom) {
		t.Helper()
		repo := newFakeChatRepo()
		var svc Service
		if notifier != nil {
			svc = NewService(repo, newFakeUserDirectory(alice, bob), notifier, nil)
		} else {
			svc = NewService(repo, newFakeUserDirectory(alice, bob), nil, nil)
		}
		room, err := svc.CreateRoom(ctx, "hemp-growers", "", alice.ID)
		require.NoError(t, err)
		return svc, room
	}

	t.Run("member can post", func(t *testing.T) {
		svc, room := setup(t, nil)
		msg, err := svc.PostMessage(ctx, room.ID, alice.ID, "hello")
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		svc, room := setup(t, nil)
		_, err := svc.PostMessage(ctx, room.ID, bob.ID, "hello")
		assert.ErrorIs(t, err, domain.ErrNotRoomMember)
	})

	t.Run("length cap enforced", func(t *testing.T) {
		svc, room := setup(t, nil)
		_, err := svc.PostMessage(ctx, room.ID, alice.ID, strings.Repeat("x", domain.MaxChatMessageLength+1))
		assert.ErrorIs(t, err, domain.ErrMessageTooLong)

		// Exactly at the cap is fine
		_, err = svc.PostMessage(ctx, room.ID, alice.ID, strings.Repeat("x", domain.MaxChatMessageLength))
		assert.NoError(t, err)
	})

	t.Run("length cap counts runes not bytes", func(t *testing.T) {
		svc, room := setup(t, nil)

		// Multi-byte characters exactly at the cap are accepted
		msg, err := svc.PostMessage(ctx, room.ID, alice.ID, strings.Repeat("茶", domain.MaxChatMessageLength))
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)

		_, err = svc.PostMessage(ctx, room.ID, alice.ID, strings.Repeat("茶", domain.MaxChatMessageLength+1))
		assert.ErrorIs(t, err, domain.ErrMessageTooLong)
	})

	t.Run("posting publishes a message event", func(t *testing.T) {
		repo := newFakeChatRepo()
		bus := event.NewMemoryBus()
		var posted int
		bus.Subscribe(event.Type(domain.EventTypeChatMessagePosted), func(_ context.Context, _ event.Event) error {
			posted++
			return nil
		})
		publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig(), nil)
		svc := NewService(repo, newFakeUserDirectory(alice), nil, publisher)

		room, err := svc.CreateRoom(ctx, "hemp-growers", "", alice.ID)
		require.NoError(t, err)
		_, err = svc.PostMessage(ctx, room.ID, alice.ID, "hello")
		require.NoError(t, err)
		assert.Equal(t, 1, posted)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		svc, room := setup(t, nil)
		_, err := svc.PostMessage(ctx, room.ID, alice.ID, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("mentions notify room members only", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc, room := setup(t, notifier)

		// bob is not a member yet: no notification
		_, err := svc.PostMessage(ctx, room.ID, alice.ID, "welcome @bob")
		require.NoError(t, err)
		assert.Empty(t, notifier.sent)

		require.NoError(t, svc.JoinRoom(ctx, room.ID, bob.ID))
		_, err = svc.PostMessage(ctx, room.ID, alice.ID, "hey @bob, check the dryer")
		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, bob.ID, notifier.sent[0].UserID)
		assert.Equal(t, domain.NotificationTypeChatMention, notifier.sent[0].Type)

		// Self-mentions are ignored
		_, err = svc.PostMessage(ctx, room.ID, alice.ID, "note to self @alice")
		require.NoError(t, err)
		assert.Len(t, notifier.sent, 1)
	})

	t.Run("mention snippets truncate on rune boundaries", func(t *testing.T) {
		notifier := &fakeNotifier{}
		svc, room := setup(t, notifier)
		require.NoError(t, svc.JoinRoom(ctx, room.ID, bob.ID))

		_, err := svc.PostMessage(ctx, room.ID, alice.ID, "@bob "+strings.Repeat("日", 200))
		require.NoError(t, err)
		require.Len(t, notifier.sent, 1)

		snippet := notifier.sent[0].Message
		assert.True(t, utf8.ValidString(snippet))
		assert.Equal(t, 121, utf8.RuneCountInString(snippet)) // 120 runes plus the ellipsis
	})
}

func TestGetMessages(t *testing.T) {
	ctx := context.Background()
	repo := newFakeChatRepo()
	svc := NewService(repo, newFakeUserDirectory(alice, bob), nil, nil)

	room, err := svc.CreateRoom(ctx, "hemp-growers", "", alice.ID)
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, room.ID, alice.ID, "first")
	require.NoError(t, err)

	msgs, err := svc.GetMessages(ctx, room.ID, alice.ID, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	_, err = svc.GetMessages(ctx, room.ID, bob.ID, time.Time{}, 0)
	assert.ErrorIs(t, err, domain.ErrNotRoomMember)
}
