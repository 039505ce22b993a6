package scrape

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_RunsAllJobs(t *testing.T) {
	p := NewWorkerPool(3, 16)
	out := p.Run(context.Background())

	var ran atomic.Int32
	const jobs = 10
	for i := 0; i < jobs; i++ {
		p.Submit(func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	p.Close()

	got := 0
	for r := range out {
		if r.Err != nil {
			t.Fatalf("unexpected job error: %v", r.Err)
		}
		got++
	}
	if got != jobs {
		t.Fatalf("expected %d results, got %d", jobs, got)
	}
	if ran.Load() != jobs {
		t.Fatalf("expected %d executions, got %d", jobs, ran.Load())
	}
}

func TestWorkerPool_ReportsJobErrors(t *testing.T) {
	p := NewWorkerPool(1, 4)
	out := p.Run(context.Background())

	boom := errors.New("boom")
	p.Submit(func(ctx context.Context) error { return boom })
	p.Submit(func(ctx context.Context) error { return nil })
	p.Close()

	var errs, oks int
	for r := range out {
		if r.Err != nil {
			errs++
		} else {
			oks++
		}
	}
	if errs != 1 || oks != 1 {
		t.Fatalf("errs = %d, oks = %d", errs, oks)
	}
}

func TestWorkerPool_NilPoolRunReturnsClosedChannel(t *testing.T) {
	var p *WorkerPool
	out := p.Run(context.Background())
	if _, ok := <-out; ok {
		t.Fatalf("expected closed result channel from nil pool")
	}
}

func TestWorkerPool_TrySubmitReportsFullBuffer(t *testing.T) {
	// Run is never called, so the buffer is the only capacity.
	p := NewWorkerPool(1, 2)
	job := func(context.Context) error { return nil }

	if !p.TrySubmit(job) || !p.TrySubmit(job) {
		t.Fatalf("buffered submissions should succeed")
	}
	if p.TrySubmit(job) {
		t.Fatalf("expected rejection once the buffer is full")
	}
}

func TestWorkerPool_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewWorkerPool(2, 4)
	out := p.Run(ctx)

	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected closed channel after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not shut down after context cancel")
	}
}
