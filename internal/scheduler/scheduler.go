package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/worker"
)

// Scheduler enqueues recurring jobs onto a worker pool at fixed intervals
type Scheduler struct {
	pool *worker.Pool
	quit chan struct{}
	wg   sync.WaitGroup
}

func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run every interval. The ticker goroutine
// starts immediately; Enqueue blocks while the pool queue is full, which
// keeps a slow pool from piling up duplicate runs of the same job.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	logger.Info("Job scheduled", "job", fmt.Sprintf("%T", job), "interval", interval.String())

	s.wg.Add(1)
	go s.loop(interval, job)
}

func (s *Scheduler) loop(interval time.Duration, job worker.Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pool.Enqueue(job)
		case <-s.quit:
			return
		}
	}
}

// Stop halts all tickers and waits for their goroutines to exit
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
