package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/metrics"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/repository"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration.
type EventHandlerDependencies struct {
	EventBus            event.Bus
	NotificationService notification.Service
	Users               repository.User
}

// RegisterEventHandlers sets up all event subscribers:
// - Notification handler (turns domain events into user notifications)
// - Metrics collector (for event-based metrics)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	notificationHandler := notification.NewEventHandler(deps.NotificationService, deps.Users)
	notificationHandler.Register(deps.EventBus)
	slog.Info(LogMsgNotificationHandlerRegistered)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
