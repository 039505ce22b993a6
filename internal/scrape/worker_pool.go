package scrape

import (
	"context"
	"sync"
)

// Job is one unit of background work, typically a full task execution.
type Job func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs submitted jobs on a fixed set of goroutines, decoupling
// HTTP submission from scrape execution.
type WorkerPool struct {
	workers int
	jobs    chan Job
	wg      sync.WaitGroup
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		jobs:    make(chan Job, buffer),
	}
}

// Submit enqueues a job. Blocks when the buffer is full.
func (p *WorkerPool) Submit(j Job) {
	if p == nil || j == nil {
		return
	}
	p.jobs <- j
}

// TrySubmit enqueues without blocking and reports false when the buffer
// is full, letting callers reject instead of stalling.
func (p *WorkerPool) TrySubmit(j Job) bool {
	if p == nil || j == nil {
		return false
	}
	select {
	case p.jobs <- j:
		return true
	default:
		return false
	}
}

// Close stops intake; workers drain the queue and exit.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.jobs)
}

// Run starts the workers and returns a channel carrying one Result per
// executed job. The channel closes after Close once the queue drains.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}

	buf := p.workers * 1024
	if buf < 1 {
		buf = 1
	}
	out := make(chan Result, buf)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.jobs:
					if !ok {
						return
					}
					if j == nil {
						continue
					}
					err := j(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
