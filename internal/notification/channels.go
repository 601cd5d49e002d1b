package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/logger"
)

// Channel delivers a notification to one external medium
type Channel interface {
	Name() string
	Send(ctx context.Context, n *domain.Notification) error
}

// LogChannel writes deliveries to the structured log. It stands in for
// providers that are configured off and keeps dispatch observable in dev.
type LogChannel struct{}

func (LogChannel) Name() string { return "log" }

func (LogChannel) Send(ctx context.Context, n *domain.Notification) error {
	logger.FromContext(ctx).Info("Notification dispatched",
		"channel", "log",
		"user_id", n.UserID,
		"type", n.Type,
		"severity", n.Severity,
		"title", n.Title)
	return nil
}

// WebhookChannel POSTs the notification as JSON to a configured endpoint
type WebhookChannel struct {
	URL    string
	Client *http.Client
}

// NewWebhookChannel creates a webhook channel with a bounded client timeout
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *WebhookChannel) Name() string { return "webhook" }

func (c *WebhookChannel) Send(ctx context.Context, n *domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
