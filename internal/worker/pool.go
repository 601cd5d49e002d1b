package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farmfit/farmfit/internal/logger"
)

// jobTimeout bounds how long a single background job may run. Scheduled
// jobs hit the database and the weather API; a hung job must not pin a
// worker forever.
const jobTimeout = 2 * time.Minute

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs background jobs on a fixed set of goroutines fed from a
// bounded queue.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

// run executes jobs until the pool is stopped. A failing job is logged
// and the worker moves on.
func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.execute(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) execute(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed,
			"job", fmt.Sprintf("%T", job),
			"error", err)
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop signals the workers and waits for in-flight jobs to finish
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
