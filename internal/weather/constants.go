package weather

import "time"

// HTTP client configuration
const (
	DefaultTimeout     = 10 * time.Second
	MaxRetries         = 3
	RetryBackoff       = 500 * time.Millisecond
	CacheSize          = 32
	CacheTTL           = 5 * time.Minute
	HeaderAPIKey       = "X-Api-Key"
	QueryParamLocation = "location"
)

// Error message constants
const (
	ErrMsgRequestFailed   = "weather request failed"
	ErrMsgUnexpectedState = "weather provider returned unexpected status"
	ErrMsgDecodeFailed    = "failed to decode weather response"
)
