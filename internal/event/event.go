package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Typed event payloads for type safety

// AchievementAwardedPayloadV1 is the typed payload for achievement award events
type AchievementAwardedPayloadV1 struct {
	UserID         string `json:"user_id"`
	AchievementKey string `json:"achievement_key"`
	Name           string `json:"name"`
	Points         int    `json:"points"`
	Timestamp      int64  `json:"timestamp"`
}

// QuestCompletedPayloadV1 is the typed payload for quest completion events
type QuestCompletedPayloadV1 struct {
	UserID   string `json:"user_id"`
	QuestID  int    `json:"quest_id"`
	QuestKey string `json:"quest_key"`
}

// QuestClaimedPayloadV1 is the typed payload for quest reward claim events
type QuestClaimedPayloadV1 struct {
	UserID      string `json:"user_id"`
	QuestID     int    `json:"quest_id"`
	QuestKey    string `json:"quest_key"`
	RewardXP    int    `json:"reward_xp"`
	RewardCoins int    `json:"reward_coins"`
}

// ChatMessagePostedPayloadV1 is the typed payload for chat message events
type ChatMessagePostedPayloadV1 struct {
	RoomID    string `json:"room_id"`
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// SensorReadingPayloadV1 is the typed payload for accepted telemetry readings
type SensorReadingPayloadV1 struct {
	SensorID  string  `json:"sensor_id"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Timestamp int64   `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	UserID   string         `json:"user_id"`
	OldLevel int            `json:"old_level"`
	NewLevel int            `json:"new_level"`
	Rewards  map[string]int `json:"rewards,omitempty"`
}

// WeatherAlertPayloadV1 is the typed payload for weather alert events
type WeatherAlertPayloadV1 struct {
	RuleKey   string  `json:"rule_key"`
	Severity  string  `json:"severity"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Location  string  `json:"location"`
	Timestamp int64   `json:"timestamp"`
}

// TelemetryAlertPayloadV1 is the typed payload for telemetry alert events
type TelemetryAlertPayloadV1 struct {
	SensorID  string  `json:"sensor_id"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
	Timestamp int64   `json:"timestamp"`
}

// MaintenanceDuePayloadV1 is the typed payload for maintenance due events
type MaintenanceDuePayloadV1 struct {
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	OwnerID       string    `json:"owner_id"`
	DueAt         time.Time `json:"due_at"`
}

// DailyQuestResetPayloadV1 is the typed payload for daily quest reset events
type DailyQuestResetPayloadV1 struct {
	ResetTime       time.Time `json:"reset_time"`
	QuestsGenerated int       `json:"quests_generated"`
	ProgressReset   int64     `json:"progress_reset"`
}

// Type-safe event constructors

// NewAchievementAwardedEvent creates a new achievement awarded event
func NewAchievementAwardedEvent(userID, achievementKey, name string, points int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeAchievementAwarded),
		Payload: AchievementAwardedPayloadV1{
			UserID:         userID,
			AchievementKey: achievementKey,
			Name:           name,
			Points:         points,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewQuestCompletedEvent creates a new quest completed event
func NewQuestCompletedEvent(userID string, questID int, questKey string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeQuestCompleted),
		Payload: QuestCompletedPayloadV1{
			UserID:   userID,
			QuestID:  questID,
			QuestKey: questKey,
		},
	}
}

// NewQuestClaimedEvent creates a new quest reward claimed event
func NewQuestClaimedEvent(userID string, questID int, questKey string, rewardXP, rewardCoins int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeQuestClaimed),
		Payload: QuestClaimedPayloadV1{
			UserID:      userID,
			QuestID:     questID,
			QuestKey:    questKey,
			RewardXP:    rewardXP,
			RewardCoins: rewardCoins,
		},
	}
}

// NewChatMessagePostedEvent creates a new chat message posted event
func NewChatMessagePostedEvent(roomID, messageID, userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeChatMessagePosted),
		Payload: ChatMessagePostedPayloadV1{
			RoomID:    roomID,
			MessageID: messageID,
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSensorReadingEvent creates a new accepted sensor reading event
func NewSensorReadingEvent(reading domain.SensorReading, metric, unit string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeSensorReading),
		Payload: SensorReadingPayloadV1{
			SensorID:  reading.SensorID,
			Metric:    metric,
			Value:     reading.Value,
			Unit:      unit,
			Timestamp: reading.Timestamp.Unix(),
		},
	}
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, rewards map[string]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelUp),
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			Rewards:  rewards,
		},
	}
}

// NewWeatherAlertEvent creates a new weather alert event
func NewWeatherAlertEvent(alert domain.WeatherAlert, location string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeWeatherAlert),
		Payload: WeatherAlertPayloadV1{
			RuleKey:   alert.RuleKey,
			Severity:  alert.Severity,
			Title:     alert.Title,
			Message:   alert.Message,
			Value:     alert.Value,
			Threshold: alert.Threshold,
			Location:  location,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewTelemetryAlertEvent creates a new telemetry alert event
func NewTelemetryAlertEvent(alert domain.TelemetryAlert) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTelemetryAlert),
		Payload: TelemetryAlertPayloadV1{
			SensorID:  alert.SensorID,
			Metric:    alert.Metric,
			Value:     alert.Value,
			Threshold: alert.Threshold,
			Severity:  alert.Severity,
			Message:   alert.Message,
			Timestamp: alert.Timestamp.Unix(),
		},
	}
}

// NewMaintenanceDueEvent creates a new maintenance due event
func NewMaintenanceDueEvent(equipmentID, equipmentName, ownerID string, dueAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeMaintenanceDue),
		Payload: MaintenanceDuePayloadV1{
			EquipmentID:   equipmentID,
			EquipmentName: equipmentName,
			OwnerID:       ownerID,
			DueAt:         dueAt,
		},
	}
}

// NewDailyQuestResetEvent creates a new daily quest reset event
func NewDailyQuestResetEvent(resetTime time.Time, generated int, progressReset int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeDailyQuestReset),
		Payload: DailyQuestResetPayloadV1{
			ResetTime:       resetTime,
			QuestsGenerated: generated,
			ProgressReset:   progressReset,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
