package metrics

import (
	"context"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeAchievementAwarded,
		domain.EventTypeQuestCompleted,
		domain.EventTypeQuestClaimed,
		domain.EventTypeLevelUp,
		domain.EventTypeDailyQuestReset,
		domain.EventTypeWeatherAlert,
		domain.EventTypeTelemetryAlert,
		domain.EventTypeSensorReading,
		domain.EventTypeMaintenanceDue,
		domain.EventTypeChatMessagePosted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.AchievementAwardedPayloadV1:
		AchievementsAwarded.WithLabelValues(payload.AchievementKey).Inc()

	case event.QuestCompletedPayloadV1:
		QuestsCompleted.WithLabelValues(payload.QuestKey).Inc()

	case event.QuestClaimedPayloadV1:
		QuestsClaimed.WithLabelValues(payload.QuestKey).Inc()

	case event.LevelUpPayloadV1:
		LevelUps.Inc()

	case event.DailyQuestResetPayloadV1:
		DailyQuestResets.Inc()

	case event.WeatherAlertPayloadV1:
		WeatherAlerts.WithLabelValues(payload.RuleKey, payload.Severity).Inc()

	case event.TelemetryAlertPayloadV1:
		TelemetryAlerts.WithLabelValues(payload.Metric, payload.Severity).Inc()

	case event.SensorReadingPayloadV1:
		SensorReadings.WithLabelValues(payload.Metric).Inc()

	case event.MaintenanceDuePayloadV1:
		MaintenanceDue.Inc()

	case event.ChatMessagePostedPayloadV1:
		ChatMessages.Inc()

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
