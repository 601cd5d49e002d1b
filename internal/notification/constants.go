package notification

import "time"

// Weather rule thresholds
const (
	FrostThresholdCelsius  = 0.0
	HeatThresholdCelsius   = 35.0
	WindThresholdKmh       = 50.0
	RainThresholdMm        = 25.0
	HumidityLowThresholdPc = 20.0
)

// Weather rule keys
const (
	RuleKeyFrost       = "frost"
	RuleKeyHeat        = "heat"
	RuleKeyWind        = "wind"
	RuleKeyRain        = "rain"
	RuleKeyLowHumidity = "low_humidity"
)

// Listing defaults
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Dispatch pool sizing and per-channel retry policy
const (
	dispatchWorkers     = 2
	dispatchQueueSize   = 64
	dispatchMaxAttempts = 3
	dispatchRetryDelay  = 200 * time.Millisecond
)

// Log message constants
const (
	LogMsgNotificationCreated    = "Notification created"
	LogMsgDispatchFailed         = "Notification dispatch failed, dead-lettering"
	LogMsgDispatchRetry          = "Notification dispatch attempt failed"
	LogMsgDeadLetterWriteFailed  = "Failed to dead-letter notification"
	LogMsgPurgedExpired          = "Purged expired notifications"
	LogMsgEventPayloadUnexpected = "Unexpected event payload"
)
