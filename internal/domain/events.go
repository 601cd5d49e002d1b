package domain

// Event type constants shared across services and the event bus
const (
	EventTypeAchievementAwarded  = "achievement.awarded"
	EventTypeQuestCompleted      = "quest.completed"
	EventTypeQuestClaimed        = "quest.claimed"
	EventTypeLevelUp             = "user.level_up"
	EventTypeDailyQuestReset     = "quest.daily_reset"
	EventTypeWeatherAlert        = "weather.alert"
	EventTypeTelemetryAlert      = "telemetry.alert"
	EventTypeMaintenanceDue      = "equipment.maintenance_due"
	EventTypeChatMessagePosted   = "chat.message_posted"
	EventTypeNotificationCreated = "notification.created"
	EventTypeSensorReading       = "telemetry.reading"
)
