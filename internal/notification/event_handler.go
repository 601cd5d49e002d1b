package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/repository"
)

// EventHandler turns domain events into user notifications
type EventHandler struct {
	service Service
	users   repository.User
}

// NewEventHandler creates a new notification event handler
func NewEventHandler(service Service, users repository.User) *EventHandler {
	return &EventHandler{
		service: service,
		users:   users,
	}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.Type(domain.EventTypeAchievementAwarded), h.HandleAchievementAwarded)
	bus.Subscribe(event.Type(domain.EventTypeLevelUp), h.HandleLevelUp)
	bus.Subscribe(event.Type(domain.EventTypeWeatherAlert), h.HandleWeatherAlert)
	bus.Subscribe(event.Type(domain.EventTypeTelemetryAlert), h.HandleTelemetryAlert)
	bus.Subscribe(event.Type(domain.EventTypeMaintenanceDue), h.HandleMaintenanceDue)
}

// HandleAchievementAwarded notifies the user about a fresh achievement
func (h *EventHandler) HandleAchievementAwarded(ctx context.Context, evt event.Event) error {
	var payload event.AchievementAwardedPayloadV1
	if err := decodePayload(evt.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode achievement payload: %w", err)
	}

	return h.service.Notify(ctx, &domain.Notification{
		UserID:   payload.UserID,
		Type:     domain.NotificationTypeAchievement,
		Severity: domain.SeverityInfo,
		Title:    "Achievement unlocked",
		Message:  fmt.Sprintf("You earned %q (+%d points)", payload.Name, payload.Points),
		Data: map[string]interface{}{
			"achievement_key": payload.AchievementKey,
			"points":          payload.Points,
		},
	})
}

// HandleLevelUp notifies the user about a level gain
func (h *EventHandler) HandleLevelUp(ctx context.Context, evt event.Event) error {
	var payload event.LevelUpPayloadV1
	if err := decodePayload(evt.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode level up payload: %w", err)
	}

	return h.service.Notify(ctx, &domain.Notification{
		UserID:   payload.UserID,
		Type:     domain.NotificationTypeLevelUp,
		Severity: domain.SeverityInfo,
		Title:    fmt.Sprintf("Level %d reached", payload.NewLevel),
		Message:  "Level rewards have been added to your inventory",
		Data: map[string]interface{}{
			"old_level": payload.OldLevel,
			"new_level": payload.NewLevel,
		},
	})
}

// HandleWeatherAlert fans a weather alert out to every user
func (h *EventHandler) HandleWeatherAlert(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	var payload event.WeatherAlertPayloadV1
	if err := decodePayload(evt.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode weather alert payload: %w", err)
	}

	userIDs, err := h.users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for weather alert: %w", err)
	}

	for _, userID := range userIDs {
		err := h.service.Notify(ctx, &domain.Notification{
			UserID:   userID,
			Type:     domain.NotificationTypeWeatherAlert,
			Severity: payload.Severity,
			Title:    payload.Title,
			Message:  payload.Message,
			Data: map[string]interface{}{
				"rule_key":  payload.RuleKey,
				"value":     payload.Value,
				"threshold": payload.Threshold,
				"location":  payload.Location,
			},
		})
		if err != nil {
			log.Error(LogMsgDispatchFailed, "user_id", userID, "rule_key", payload.RuleKey, "error", err)
		}
	}
	return nil
}

// HandleTelemetryAlert fans a sensor alert out to every user
func (h *EventHandler) HandleTelemetryAlert(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	var payload event.TelemetryAlertPayloadV1
	if err := decodePayload(evt.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode telemetry alert payload: %w", err)
	}

	userIDs, err := h.users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for telemetry alert: %w", err)
	}

	for _, userID := range userIDs {
		err := h.service.Notify(ctx, &domain.Notification{
			UserID:   userID,
			Type:     domain.NotificationTypeTelemetryAlert,
			Severity: payload.Severity,
			Title:    fmt.Sprintf("Sensor alert: %s", metricTitle(payload.Metric)),
			Message:  payload.Message,
			Data: map[string]interface{}{
				"sensor_id": payload.SensorID,
				"metric":    payload.Metric,
				"value":     payload.Value,
				"threshold": payload.Threshold,
			},
		})
		if err != nil {
			log.Error(LogMsgDispatchFailed, "user_id", userID, "sensor_id", payload.SensorID, "error", err)
		}
	}
	return nil
}

// HandleMaintenanceDue notifies the equipment owner
func (h *EventHandler) HandleMaintenanceDue(ctx context.Context, evt event.Event) error {
	var payload event.MaintenanceDuePayloadV1
	if err := decodePayload(evt.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode maintenance due payload: %w", err)
	}

	return h.service.Notify(ctx, &domain.Notification{
		UserID:   payload.OwnerID,
		Type:     domain.NotificationTypeMaintenanceDue,
		Severity: domain.SeverityWarning,
		Title:    fmt.Sprintf("Maintenance due: %s", payload.EquipmentName),
		Message:  fmt.Sprintf("Scheduled maintenance is due by %s", payload.DueAt.Format("2006-01-02 15:04")),
		Data: map[string]interface{}{
			"equipment_id": payload.EquipmentID,
			"due_at":       payload.DueAt,
		},
	})
}

// metricTitle turns a metric key like "soil_moisture" into display text.
func metricTitle(metric string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(metric, "_", " "))
}

// decodePayload converts an event payload to the expected struct. Payloads
// published in-process arrive typed; anything else round-trips through JSON.
func decodePayload(input interface{}, output interface{}) error {
	switch v := input.(type) {
	case event.AchievementAwardedPayloadV1:
		if out, ok := output.(*event.AchievementAwardedPayloadV1); ok {
			*out = v
			return nil
		}
	case event.LevelUpPayloadV1:
		if out, ok := output.(*event.LevelUpPayloadV1); ok {
			*out = v
			return nil
		}
	case event.WeatherAlertPayloadV1:
		if out, ok := output.(*event.WeatherAlertPayloadV1); ok {
			*out = v
			return nil
		}
	case event.TelemetryAlertPayloadV1:
		if out, ok := output.(*event.TelemetryAlertPayloadV1); ok {
			*out = v
			return nil
		}
	case event.MaintenanceDuePayloadV1:
		if out, ok := output.(*event.MaintenanceDuePayloadV1); ok {
			*out = v
			return nil
		}
	}

	data, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, output)
}
