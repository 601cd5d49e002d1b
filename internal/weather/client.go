package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/logger"
)

// Client fetches weather snapshots for a location
type Client interface {
	Current(ctx context.Context, location string) (*domain.CurrentWeather, error)
}

// HTTPClient talks to the upstream weather provider with retries and a
// short-lived cache so the rule engine can poll aggressively without
// hammering the provider.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *expirable.LRU[string, *domain.CurrentWeather]
	backoff time.Duration
}

// providerResponse is the upstream wire format
type providerResponse struct {
	Location string  `json:"location"`
	TempC    float64 `json:"temp_c"`
	Humidity float64 `json:"humidity"`
	PrecipMm float64 `json:"precip_mm"`
	WindKph  float64 `json:"wind_kph"`
	Epoch    int64   `json:"last_updated_epoch"`
}

// NewHTTPClient creates a weather client for the given provider endpoint
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		cache:   expirable.NewLRU[string, *domain.CurrentWeather](CacheSize, nil, CacheTTL),
		backoff: RetryBackoff,
	}
}

// Current returns the latest weather for the location, serving from cache
// when the snapshot is fresh enough.
func (c *HTTPClient) Current(ctx context.Context, location string) (*domain.CurrentWeather, error) {
	if cached, ok := c.cache.Get(location); ok {
		return cached, nil
	}

	snapshot, err := c.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	c.cache.Add(location, snapshot)
	return snapshot, nil
}

// fetch performs the request, retrying on server errors with a linear backoff
func (c *HTTPClient) fetch(ctx context.Context, location string) (*domain.CurrentWeather, error) {
	log := logger.FromContext(ctx)

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRequestFailed, err)
	}
	q := endpoint.Query()
	q.Set(QueryParamLocation, location)
	endpoint.RawQuery = q.Encode()

	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgRequestFailed, err)
		}
		if c.apiKey != "" {
			req.Header.Set(HeaderAPIKey, c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.Warn("Weather request attempt failed", "attempt", attempt, "error", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var body providerResponse
			err := json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgDecodeFailed, err)
			}
			return &domain.CurrentWeather{
				Location:      body.Location,
				Temperature:   body.TempC,
				Humidity:      body.Humidity,
				Precipitation: body.PrecipMm,
				WindSpeed:     body.WindKph,
				ObservedAt:    time.Unix(body.Epoch, 0).UTC(),
			}, nil

		case resp.StatusCode >= http.StatusInternalServerError:
			resp.Body.Close()
			lastErr = fmt.Errorf("%s: %d", ErrMsgUnexpectedState, resp.StatusCode)
			log.Warn("Weather provider returned server error", "attempt", attempt, "status", resp.StatusCode)
			continue

		default:
			// Client errors will not improve on retry
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s: %d", domain.ErrWeatherUnavailable, ErrMsgUnexpectedState, resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, lastErr)
}
