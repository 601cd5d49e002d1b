package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeResetter struct {
	calls int32
}

func (f *fakeResetter) ResetDailyQuests(context.Context) error {
	atomic.AddInt32(&f.calls, 1)
	return nil
}

// TestTimeUntilNextReset tests reset time calculation
func TestTimeUntilNextReset(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want func(d time.Duration) bool
	}{
		{
			name: "01:00 UTC should be ~23 hours until next reset",
			now:  time.Date(2026, 2, 2, 1, 0, 0, 0, time.UTC),
			want: func(d time.Duration) bool {
				return d > 22*time.Hour && d < 24*time.Hour
			},
		},
		{
			name: "23:59 UTC should be ~1 minute until next reset",
			now:  time.Date(2026, 2, 2, 23, 59, 0, 0, time.UTC),
			want: func(d time.Duration) bool {
				return d > 0 && d < 2*time.Minute
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Mirror the calculation with a fixed clock
			nextReset := time.Date(tt.now.Year(), tt.now.Month(), tt.now.Day(), 0, 0, 0, 0, time.UTC)
			if !nextReset.After(tt.now) {
				nextReset = nextReset.AddDate(0, 0, 1)
			}
			testDuration := nextReset.Sub(tt.now)

			assert.Greater(t, testDuration, time.Duration(0))
			assert.Less(t, testDuration, 25*time.Hour)
			assert.True(t, tt.want(testDuration))
		})
	}
}

// TestDailyResetWorkerStart tests that worker schedules a reset
func TestDailyResetWorkerStart(t *testing.T) {
	worker := NewDailyResetWorker(&fakeResetter{})

	// Start should not panic
	worker.Start()

	// Shutdown should complete without error
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, worker.Shutdown(ctx))
}

// TestDailyResetWorkerShutdown tests graceful shutdown
func TestDailyResetWorkerShutdown(t *testing.T) {
	worker := NewDailyResetWorker(&fakeResetter{})
	worker.Start()

	// Allow time for any scheduled timers
	time.Sleep(100 * time.Millisecond)

	// Shutdown should complete without hanging
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, worker.Shutdown(ctx))
}

// TestDailyResetWorkerShutdownTimeout tests timeout during shutdown
func TestDailyResetWorkerShutdownTimeout(t *testing.T) {
	worker := NewDailyResetWorker(&fakeResetter{})
	worker.Start()

	// Shutdown with very short timeout should timeout
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	// This might timeout (expected) or succeed quickly (also ok)
	_ = worker.Shutdown(ctx)

	// Verify worker still shuts down eventually
	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	assert.NoError(t, worker.Shutdown(ctx2))
}

// TestExecuteResetRunsResetter exercises the tracked goroutine path
func TestExecuteResetRunsResetter(t *testing.T) {
	resetter := &fakeResetter{}
	worker := NewDailyResetWorker(resetter)

	worker.executeReset()
	worker.wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&resetter.calls))
}
