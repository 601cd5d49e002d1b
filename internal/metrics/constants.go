package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameAchievementsAwarded = "achievements_awarded_total"
	MetricNameQuestsCompleted     = "quests_completed_total"
	MetricNameQuestsClaimed       = "quest_rewards_claimed_total"
	MetricNameLevelUps            = "level_ups_total"
	MetricNameWeatherAlerts       = "weather_alerts_total"
	MetricNameTelemetryAlerts     = "telemetry_alerts_total"
	MetricNameSensorReadings      = "sensor_readings_total"
	MetricNameMaintenanceDue      = "equipment_maintenance_due_total"
	MetricNameDailyQuestResets    = "daily_quest_resets_total"
	MetricNameChatMessages        = "chat_messages_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextAchievementsAwarded = "Total number of achievements awarded"
	HelpTextQuestsCompleted     = "Total number of quests completed"
	HelpTextQuestsClaimed       = "Total number of quest rewards claimed"
	HelpTextLevelUps            = "Total number of user level ups"
	HelpTextWeatherAlerts       = "Total number of weather alerts raised"
	HelpTextTelemetryAlerts     = "Total number of telemetry alerts raised"
	HelpTextSensorReadings      = "Total number of accepted sensor readings"
	HelpTextMaintenanceDue      = "Total number of equipment maintenance due events"
	HelpTextDailyQuestResets    = "Total number of daily quest resets"
	HelpTextChatMessages        = "Total number of chat messages posted"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelAchievement = "achievement"
	LabelQuest       = "quest"
	LabelRule        = "rule"
	LabelMetric      = "metric"
	LabelSeverity    = "severity"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
