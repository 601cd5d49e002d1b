package domain

import "time"

// Notification is a persistent user-facing notification record
type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Severity  string                 `json:"severity"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	ExpiresAt time.Time              `json:"expires_at"` // auto-purged after expiry
}

// Notification type constants
const (
	NotificationTypeWeatherAlert   = "weather_alert"
	NotificationTypeMaintenanceDue = "maintenance_due"
	NotificationTypeTelemetryAlert = "telemetry_alert"
	NotificationTypeAchievement    = "achievement_awarded"
	NotificationTypeQuestComplete  = "quest_completed"
	NotificationTypeLevelUp        = "level_up"
	NotificationTypeChatMention    = "chat_mention"
)

// Notification severity constants
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// NotificationTTL is how long notifications live before purge
const NotificationTTL = 7 * 24 * time.Hour
