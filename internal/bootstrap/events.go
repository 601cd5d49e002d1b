package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/farmfit/farmfit/internal/config"
	"github.com/farmfit/farmfit/internal/event"
)

// InitializeEventSystem creates and configures the event bus and resilient
// publisher. It creates the dead-letter directory and wires the dead-letter
// writer so events that exhaust their retries are never silently lost.
// Returns the event bus, resilient publisher, dead-letter writer, and any
// error encountered.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, *event.DeadLetterWriter, error) {
	eventBus := event.NewMemoryBus()

	// Ensure dead-letter directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(cfg.DeadLetterPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterWriter, err)
	}

	retryConfig := event.DefaultResilientConfig()
	resilientPublisher := event.NewResilientPublisher(eventBus, retryConfig, deadLetter)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", retryConfig.MaxRetries,
		"retry_delay", retryConfig.RetryDelay,
		"deadletter_path", cfg.DeadLetterPath)

	return eventBus, resilientPublisher, deadLetter, nil
}
