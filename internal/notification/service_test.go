package notification

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
)

// fakeNotificationRepo is an in-memory repository for service tests
type fakeNotificationRepo struct {
	mu      sync.Mutex
	records map[string]*domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: make(map[string]*domain.Notification)}
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	cp := *n
	f.records[n.ID] = &cp
	return nil
}

func (f *fakeNotificationRepo) GetNotification(_ context.Context, id string) (*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.records[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotificationRepo) ListForUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.records {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		if len(out) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string, readAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.records[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	n.ReadAt = &readAt
	return nil
}

func (f *fakeNotificationRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purged int64
	for id, n := range f.records {
		if !n.ExpiresAt.After(now) {
			delete(f.records, id)
			purged++
		}
	}
	return purged, nil
}

// recordingChannel captures dispatched notifications
type recordingChannel struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (c *recordingChannel) Name() string { return "recording" }

func (c *recordingChannel) Send(_ context.Context, n *domain.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, *n)
	return nil
}

func (c *recordingChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("critical dispatches before returning", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		ch := &recordingChannel{}
		svc := NewService(repo, nil, ch)

		err := svc.Notify(ctx, &domain.Notification{
			UserID:   "u1",
			Type:     domain.NotificationTypeWeatherAlert,
			Severity: domain.SeverityCritical,
			Title:    "Frost warning",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, ch.count())
	})

	t.Run("info is queued and drained on shutdown", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		ch := &recordingChannel{}
		svc := NewService(repo, nil, ch)

		err := svc.Notify(ctx, &domain.Notification{
			UserID: "u1",
			Type:   domain.NotificationTypeLevelUp,
			Title:  "Level 2 reached",
		})
		require.NoError(t, err)
		require.NoError(t, svc.Shutdown(ctx))
		assert.Equal(t, 1, ch.count())
	})

	t.Run("defaults are applied", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewService(repo, nil)

		n := &domain.Notification{
			UserID: "u1",
			Type:   domain.NotificationTypeChatMention,
			Title:  "Mentioned in hemp-growers",
		}
		require.NoError(t, svc.Notify(ctx, n))
		assert.Equal(t, domain.SeverityInfo, n.Severity)
		assert.WithinDuration(t, time.Now().Add(domain.NotificationTTL), n.ExpiresAt, time.Minute)
		require.NoError(t, svc.Shutdown(ctx))
	})

	t.Run("rejects incomplete input", func(t *testing.T) {
		svc := NewService(newFakeNotificationRepo(), nil)
		err := svc.Notify(ctx, &domain.Notification{UserID: "u1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// flakyChannel fails a fixed number of sends before succeeding
type flakyChannel struct {
	mu       sync.Mutex
	failures int
	attempts int
	sent     int
}

func (c *flakyChannel) Name() string { return "flaky" }

func (c *flakyChannel) Send(_ context.Context, _ *domain.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	if c.attempts <= c.failures {
		return errors.New("channel unavailable")
	}
	c.sent++
	return nil
}

func TestDispatchRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("transient failure is retried", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		ch := &flakyChannel{failures: dispatchMaxAttempts - 1}
		svc := NewService(repo, nil, ch)

		require.NoError(t, svc.Notify(ctx, &domain.Notification{
			UserID: "u1",
			Type:   domain.NotificationTypeWeatherAlert,
			Title:  "Wind advisory",
		}))
		require.NoError(t, svc.Shutdown(ctx))

		assert.Equal(t, dispatchMaxAttempts, ch.attempts)
		assert.Equal(t, 1, ch.sent)
	})

	t.Run("exhausted retries dead-letter the notification", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notifications.jsonl")
		deadLetter, err := event.NewDeadLetterWriter(path)
		require.NoError(t, err)
		defer deadLetter.Close()

		repo := newFakeNotificationRepo()
		ch := &flakyChannel{failures: dispatchMaxAttempts + 1}
		svc := NewService(repo, deadLetter, ch)

		n := &domain.Notification{
			UserID: "u1",
			Type:   domain.NotificationTypeWeatherAlert,
			Title:  "Frost warning",
		}
		require.NoError(t, svc.Notify(ctx, n))
		require.NoError(t, svc.Shutdown(ctx))

		assert.Equal(t, dispatchMaxAttempts, ch.attempts)
		assert.Zero(t, ch.sent)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var entry event.DeadLetterEntry
		require.NoError(t, json.Unmarshal(data, &entry))
		assert.Equal(t, event.Type(domain.EventTypeNotificationCreated), entry.Event.Type)
		assert.Equal(t, dispatchMaxAttempts, entry.Attempts)
		assert.Equal(t, "channel unavailable", entry.LastError)
	})
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	svc := NewService(repo, nil)

	expired := &domain.Notification{
		UserID:    "u1",
		Type:      domain.NotificationTypeQuestComplete,
		Title:     "old",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.CreateNotification(ctx, expired))
	require.NoError(t, svc.Notify(ctx, &domain.Notification{
		UserID: "u1",
		Type:   domain.NotificationTypeQuestComplete,
		Title:  "fresh",
	}))

	purged, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	require.NoError(t, svc.Shutdown(ctx))
}

// fakeUserRepo backs the event handler fan-out tests
type fakeUserRepo struct {
	ids []string
}

func (f *fakeUserRepo) CreateUser(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetUserByID(context.Context, string) (*domain.User, error)       { return nil, nil }
func (f *fakeUserRepo) GetUserByUsername(context.Context, string) (*domain.User, error) { return nil, nil }
func (f *fakeUserRepo) ListUserIDs(context.Context) ([]string, error)                   { return f.ids, nil }
func (f *fakeUserRepo) UpdateUserTier(context.Context, string, string) error            { return nil }

func TestEventHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("weather alert fans out to all users", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		ch := &recordingChannel{}
		svc := NewService(repo, nil, ch)
		handler := NewEventHandler(svc, &fakeUserRepo{ids: []string{"u1", "u2", "u3"}})

		bus := event.NewMemoryBus()
		handler.Register(bus)

		alert := domain.WeatherAlert{
			RuleKey:   RuleKeyFrost,
			Severity:  domain.SeverityCritical,
			Title:     "Frost warning",
			Message:   "Below freezing tonight",
			Value:     -2,
			Threshold: FrostThresholdCelsius,
		}
		require.NoError(t, bus.Publish(ctx, event.NewWeatherAlertEvent(alert, "Fraser Valley")))
		require.NoError(t, svc.Shutdown(ctx))

		// Critical severity means all three went out synchronously
		assert.Equal(t, 3, ch.count())
		assert.Len(t, repo.records, 3)
	})

	t.Run("achievement award notifies the single user", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		svc := NewService(repo, nil)
		handler := NewEventHandler(svc, &fakeUserRepo{})

		bus := event.NewMemoryBus()
		handler.Register(bus)

		evt := event.NewAchievementAwardedEvent("u1", "first_planting", "First Planting", 10)
		require.NoError(t, bus.Publish(ctx, evt))
		require.NoError(t, svc.Shutdown(ctx))

		list, err := svc.ListNotifications(ctx, "u1", false, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, domain.NotificationTypeAchievement, list[0].Type)
	})
}
