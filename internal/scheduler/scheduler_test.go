package scheduler

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/config"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	lastReq scrape.Params
	err     error
	panics  bool
}

func (f *fakeSubmitter) Submit(_ context.Context, params scrape.Params) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = params
	f.mu.Unlock()
	if f.panics {
		panic("scrape blew up")
	}
	if f.err != nil {
		return "", f.err
	}
	return "task-1", nil
}

type fakeLocker struct {
	acquired bool
	err      error
}

func (f *fakeLocker) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return f.acquired, f.err
}

func testScheduler(sub Submitter, lock Locker) *Scheduler {
	return New(sub, lock, config.SchedulerConfig{
		Enabled:     true,
		CronSpec:    "@daily",
		SearchTerms: []string{"Software Engineer"},
		Location:    "Remote",
	}, log.New(io.Discard, "", 0))
}

func TestRunOnce_SubmitsDefaultParams(t *testing.T) {
	sub := &fakeSubmitter{}
	s := testScheduler(sub, &fakeLocker{acquired: true})

	s.runOnce(context.Background())

	if sub.calls != 1 {
		t.Fatalf("expected 1 submit, got %d", sub.calls)
	}
	if len(sub.lastReq.SearchTerms) != 1 || sub.lastReq.SearchTerms[0] != "Software Engineer" {
		t.Fatalf("unexpected params %+v", sub.lastReq)
	}
	if sub.lastReq.Location != "Remote" {
		t.Fatalf("location = %q", sub.lastReq.Location)
	}
}

func TestRunOnce_SkipsWhenLockHeld(t *testing.T) {
	sub := &fakeSubmitter{}
	s := testScheduler(sub, &fakeLocker{acquired: false})

	s.runOnce(context.Background())

	if sub.calls != 0 {
		t.Fatalf("expected no submit while lock held, got %d", sub.calls)
	}
}

func TestRunOnce_ProceedsOnLockError(t *testing.T) {
	sub := &fakeSubmitter{}
	s := testScheduler(sub, &fakeLocker{err: errors.New("redis down")})

	s.runOnce(context.Background())

	if sub.calls != 1 {
		t.Fatalf("lock errors must not block the run, calls = %d", sub.calls)
	}
}

func TestRunOnce_IsolatesFailuresAndPanics(t *testing.T) {
	s := testScheduler(&fakeSubmitter{err: errors.New("all sites failed")}, nil)
	s.runOnce(context.Background())

	// A panicking run must not take the cron goroutine down with it.
	s = testScheduler(&fakeSubmitter{panics: true}, nil)
	s.runOnce(context.Background())
}

func TestStart_RejectsBadCronSpec(t *testing.T) {
	s := New(&fakeSubmitter{}, nil, config.SchedulerConfig{CronSpec: "not a spec"}, log.New(io.Discard, "", 0))
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected error for invalid cron spec")
	}
}
