package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Gamification errors
	ErrMsgAchievementNotFound = "achievement not found"
	ErrMsgQuestNotFound       = "quest not found"
	ErrMsgQuestNotClaimable   = "quest not claimable"
	ErrMsgAlreadyClaimed      = "reward already claimed"

	// Notification errors
	ErrMsgNotificationNotFound = "notification not found"

	// Chat errors
	ErrMsgRoomNotFound   = "room not found"
	ErrMsgNotRoomMember  = "not a member of room"
	ErrMsgMessageTooLong = "message too long"

	// Catalog errors
	ErrMsgTierNotFound    = "tier not found"
	ErrMsgFeatureLocked   = "feature is locked"
	ErrMsgVarietyNotFound = "variety not found"
	ErrMsgGuideNotFound   = "plant guide not found"

	// Equipment errors
	ErrMsgEquipmentNotFound = "equipment not found"
	ErrMsgInvalidTransition = "invalid status transition"

	// Telemetry errors
	ErrMsgInvalidChecksum = "reading checksum invalid"
	ErrMsgUnknownSensor   = "unknown sensor"

	// Hemp errors
	ErrMsgUnsupportedCompound = "unsupported cannabinoid target"

	// Weather errors
	ErrMsgWeatherUnavailable = "weather data unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Gamification errors
	ErrAchievementNotFound = errors.New(ErrMsgAchievementNotFound)
	ErrQuestNotFound       = errors.New(ErrMsgQuestNotFound)
	ErrQuestNotClaimable   = errors.New(ErrMsgQuestNotClaimable)
	ErrAlreadyClaimed      = errors.New(ErrMsgAlreadyClaimed)

	// Notification errors
	ErrNotificationNotFound = errors.New(ErrMsgNotificationNotFound)

	// Chat errors
	ErrRoomNotFound   = errors.New(ErrMsgRoomNotFound)
	ErrNotRoomMember  = errors.New(ErrMsgNotRoomMember)
	ErrMessageTooLong = errors.New(ErrMsgMessageTooLong)

	// Catalog errors
	ErrTierNotFound    = errors.New(ErrMsgTierNotFound)
	ErrFeatureLocked   = errors.New(ErrMsgFeatureLocked)
	ErrVarietyNotFound = errors.New(ErrMsgVarietyNotFound)
	ErrGuideNotFound   = errors.New(ErrMsgGuideNotFound)

	// Equipment errors
	ErrEquipmentNotFound = errors.New(ErrMsgEquipmentNotFound)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)

	// Telemetry errors
	ErrInvalidChecksum = errors.New(ErrMsgInvalidChecksum)
	ErrUnknownSensor   = errors.New(ErrMsgUnknownSensor)

	// Hemp errors
	ErrUnsupportedCompound = errors.New(ErrMsgUnsupportedCompound)

	// Weather errors
	ErrWeatherUnavailable = errors.New(ErrMsgWeatherUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
