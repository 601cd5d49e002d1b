package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfit/farmfit/internal/domain"
)

const sampleResponse = `{
	"location": "Fraser Valley",
	"temp_c": -1.5,
	"humidity": 80,
	"precip_mm": 0,
	"wind_kph": 12,
	"last_updated_epoch": 1766500000
}`

func newTestClient(serverURL string) *HTTPClient {
	c := NewHTTPClient(serverURL, "test-key")
	c.backoff = 0
	return c
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("parses provider response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get(HeaderAPIKey))
			assert.Equal(t, "Fraser Valley", r.URL.Query().Get(QueryParamLocation))
			w.Write([]byte(sampleResponse)) //nolint:errcheck
		}))
		defer server.Close()

		got, err := newTestClient(server.URL).Current(ctx, "Fraser Valley")
		require.NoError(t, err)
		assert.Equal(t, "Fraser Valley", got.Location)
		assert.Equal(t, -1.5, got.Temperature)
		assert.Equal(t, 80.0, got.Humidity)
		assert.Equal(t, 12.0, got.WindSpeed)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(sampleResponse)) //nolint:errcheck
		}))
		defer server.Close()

		got, err := newTestClient(server.URL).Current(ctx, "Fraser Valley")
		require.NoError(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		assert.Equal(t, -1.5, got.Temperature)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Current(ctx, "Fraser Valley")
		assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
		assert.Equal(t, int32(MaxRetries), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Current(ctx, "Fraser Valley")
		assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Write([]byte(sampleResponse)) //nolint:errcheck
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Current(ctx, "Fraser Valley")
		require.NoError(t, err)
		_, err = client.Current(ctx, "Fraser Valley")
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
