package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Daily Reset Worker
// ============================================================================

// Log messages for daily quest reset worker operations
const (
	LogMsgDailyResetStandby   = "Daily quest reset in standby"
	LogMsgDailyResetApproach  = "Daily quest reset scheduled"
	LogMsgDailyResetStarting  = "Daily quest reset starting"
	LogMsgDailyResetCompleted = "Daily quest reset completed"
	LogMsgDailyResetFailed    = "Daily quest reset failed"
)

// ============================================================================
// Log Messages - Scheduled Jobs
// ============================================================================

// Log messages for recurring job execution
const (
	LogMsgMaintenanceScanCompleted = "Maintenance scan completed"
	LogMsgWeatherPollFailed        = "Weather poll failed"
	LogMsgWeatherAlertsRaised      = "Weather alerts raised"
	LogMsgNotificationPurgeDone    = "Expired notifications purged"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
