package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/repository"
)

type Service interface {
	// Notify persists a notification and dispatches it to channels.
	// Critical notifications go out before Notify returns.
	Notify(ctx context.Context, n *domain.Notification) error

	// Queries
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error

	// PurgeExpired removes records past their TTL (called by worker)
	PurgeExpired(ctx context.Context) (int64, error)

	// Lifecycle
	Shutdown(ctx context.Context) error
}

type service struct {
	repo       repository.Notification
	channels   []Channel
	deadLetter *event.DeadLetterWriter
	queue      chan *domain.Notification
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewService creates the notification service and starts its dispatch
// workers. deadLetter may be nil, in which case undeliverable
// notifications are only logged.
func NewService(repo repository.Notification, deadLetter *event.DeadLetterWriter, channels ...Channel) Service {
	if len(channels) == 0 {
		channels = []Channel{LogChannel{}}
	}
	s := &service{
		repo:       repo,
		channels:   channels,
		deadLetter: deadLetter,
		queue:      make(chan *domain.Notification, dispatchQueueSize),
	}
	for i := 0; i < dispatchWorkers; i++ {
		s.wg.Add(1)
		go s.dispatchWorker()
	}
	return s
}

// Notify persists the notification, then dispatches. Critical severity is
// dispatched inline; everything else is queued to the dispatch workers.
func (s *service) Notify(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContext(ctx)

	if n.UserID == "" || n.Type == "" || n.Title == "" {
		return fmt.Errorf("%w: notification requires user, type and title", domain.ErrInvalidInput)
	}
	if n.Severity == "" {
		n.Severity = domain.SeverityInfo
	}
	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = time.Now().Add(domain.NotificationTTL)
	}

	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return err
	}

	log.Info(LogMsgNotificationCreated,
		"notification_id", n.ID,
		"user_id", n.UserID,
		"type", n.Type,
		"severity", n.Severity)

	if n.Severity == domain.SeverityCritical {
		s.dispatch(ctx, n)
		return nil
	}

	queued := *n
	s.queue <- &queued
	return nil
}

// dispatchWorker drains the queue until Shutdown closes it
func (s *service) dispatchWorker() {
	defer s.wg.Done()
	for n := range s.queue {
		// Detached context: the request that queued this may be done
		s.dispatch(context.Background(), n)
	}
}

// dispatch fans the notification out to every channel. Each send is
// retried with backoff; a channel that stays down gets the notification
// dead-lettered instead of dropped. One bad channel does not block the others.
func (s *service) dispatch(ctx context.Context, n *domain.Notification) {
	log := logger.FromContext(ctx)
	for _, ch := range s.channels {
		if err := s.sendWithRetry(ctx, ch, n); err != nil {
			log.Error(LogMsgDispatchFailed,
				"channel", ch.Name(),
				"notification_id", n.ID,
				"attempts", dispatchMaxAttempts,
				"error", err)
			s.writeDeadLetter(ch, n, err)
		}
	}
}

func (s *service) sendWithRetry(ctx context.Context, ch Channel, n *domain.Notification) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= dispatchMaxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(dispatchRetryDelay * time.Duration(attempt-1))
		}
		lastErr = ch.Send(ctx, n)
		if lastErr == nil {
			return nil
		}
		log.Warn(LogMsgDispatchRetry,
			"channel", ch.Name(),
			"notification_id", n.ID,
			"attempt", attempt,
			"error", lastErr)
	}
	return lastErr
}

// writeDeadLetter records a notification no delivery attempt could land
func (s *service) writeDeadLetter(ch Channel, n *domain.Notification, sendErr error) {
	if s.deadLetter == nil {
		return
	}
	evt := event.Event{
		Version:  event.EventSchemaVersion,
		Type:     event.Type(domain.EventTypeNotificationCreated),
		Payload:  n,
		Metadata: map[string]interface{}{"channel": ch.Name()},
	}
	if err := s.deadLetter.Write(evt, dispatchMaxAttempts, sendErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// ListNotifications returns a user's notifications, unread first
func (s *service) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListForUser(ctx, userID, unreadOnly, limit)
}

// MarkRead marks a notification as read
func (s *service) MarkRead(ctx context.Context, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID, time.Now())
}

// PurgeExpired removes notifications past their expiry
func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	purged, err := s.repo.PurgeExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		logger.FromContext(ctx).Info(LogMsgPurgedExpired, "count", purged)
	}
	return purged, nil
}

// Shutdown closes the dispatch queue and waits for the workers to drain it
func (s *service) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.queue) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
