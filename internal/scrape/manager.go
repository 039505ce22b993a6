package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
	"github.com/dheerajram13/job-app-tracker/internal/scrape/source"
	"github.com/dheerajram13/job-app-tracker/internal/skills"

	"github.com/google/uuid"
)

// ErrQueueFull is returned by Submit when the worker pool buffer has no
// room; callers translate it into a retryable rejection.
var ErrQueueFull = errors.New("scrape queue is full")

// PostingWriter persists completed results. Upserts key on URL so
// re-scraped postings refresh in place.
type PostingWriter interface {
	UpsertPostings(ctx context.Context, items []posting.Posting) (int, error)
}

// Manager owns the task state machine. Submission creates a pending
// record and hands execution to the worker pool; exactly one worker
// invocation drives a task to its terminal state.
type Manager struct {
	store     TaskStore
	registry  *source.Registry
	writer    PostingWriter
	extractor *skills.Extractor
	pool      *WorkerPool

	defaults    Defaults
	siteTimeout time.Duration

	notify func(t Task)
	logger *log.Logger
}

type ManagerOptions struct {
	Defaults    Defaults
	SiteTimeout time.Duration
	Workers     int
	// Notify, when set, is called with the terminal snapshot of every
	// finished task.
	Notify func(t Task)
}

func NewManager(store TaskStore, registry *source.Registry, writer PostingWriter, extractor *skills.Extractor, opts ManagerOptions, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	if extractor == nil {
		extractor = skills.NewExtractor()
	}
	if opts.SiteTimeout <= 0 {
		opts.SiteTimeout = 30 * time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	d := opts.Defaults
	if len(d.Sites) == 0 && registry != nil {
		d.Sites = registry.Names()
	}
	if d.NumResults <= 0 {
		d.NumResults = 20
	}
	if d.FreshnessHours <= 0 {
		d.FreshnessHours = 72
	}

	return &Manager{
		store:       store,
		registry:    registry,
		writer:      writer,
		extractor:   extractor,
		pool:        NewWorkerPool(opts.Workers, opts.Workers*4),
		defaults:    d,
		siteTimeout: opts.SiteTimeout,
		notify:      opts.Notify,
		logger:      logger,
	}
}

// Start launches the worker pool. Jobs carry their own lifecycle logging,
// so pool results are only drained here.
func (m *Manager) Start(ctx context.Context) {
	if m == nil {
		return
	}
	results := m.pool.Run(ctx)
	go func() {
		for range results {
		}
	}()
}

// Close stops intake; in-flight tasks drain before workers exit.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.pool.Close()
}

// Submit validates the request, persists a pending task and returns its
// id without waiting for execution. Identical submissions always create
// independent tasks. A full worker queue rejects with ErrQueueFull
// rather than blocking the caller.
func (m *Manager) Submit(ctx context.Context, p Params) (string, error) {
	if m == nil || m.store == nil {
		return "", fmt.Errorf("scrape manager not initialized")
	}

	norm, err := p.Normalize(m.defaults)
	if err != nil {
		return "", err
	}

	t := Task{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Params:    norm,
		Results:   []posting.Posting{},
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Create(ctx, t); err != nil {
		return "", fmt.Errorf("create task record: %w", err)
	}

	ok := m.pool.TrySubmit(func(jobCtx context.Context) error {
		return m.execute(jobCtx, t.ID)
	})
	if !ok {
		if derr := m.store.Delete(ctx, t.ID); derr != nil {
			m.logger.Printf("scrape task=%s status=error step=rollback err=%v", t.ID, derr)
		}
		m.logger.Printf("scrape task=%s status=rejected reason=queue_full", t.ID)
		return "", ErrQueueFull
	}

	m.logger.Printf("scrape task=%s status=submitted terms=%q sites=%v", t.ID, norm.SearchTerms, norm.Sites)
	return t.ID, nil
}

// GetStatus returns the current snapshot, ErrTaskNotFound for unknown or
// expired ids. Safe to poll at any frequency.
func (m *Manager) GetStatus(ctx context.Context, id string) (Task, error) {
	if m == nil || m.store == nil {
		return Task{}, fmt.Errorf("scrape manager not initialized")
	}
	return m.store.Get(ctx, id)
}

// execute drives one task to its terminal state. A per-site failure is
// recorded and the remaining sites continue; the task completes when at
// least one site returned, and fails only when every site failed or the
// result write failed.
func (m *Manager) execute(ctx context.Context, id string) error {
	t, err := m.store.Get(ctx, id)
	if err != nil {
		m.logger.Printf("scrape task=%s status=lost err=%v", id, err)
		return err
	}

	t.Status = StatusRunning
	if err := m.store.Update(ctx, t); err != nil {
		m.logger.Printf("scrape task=%s status=error step=mark_running err=%v", id, err)
		return err
	}

	profile := posting.Profile{SearchTerms: t.Params.SearchTerms, Skills: t.Params.Skills}
	results := make([]posting.Posting, 0, t.Params.NumResults)
	var siteErrs []string
	okSites := 0

	for _, site := range t.Params.Sites {
		src, ok := m.registry.Get(site)
		if !ok {
			siteErrs = append(siteErrs, fmt.Sprintf("%s: unsupported site", site))
			m.logger.Printf("scrape task=%s site=%s status=skipped reason=unsupported", id, site)
			continue
		}

		siteCtx, cancel := context.WithTimeout(ctx, m.siteTimeout)
		raws, err := src.Fetch(siteCtx, t.Params.SearchTerms, t.Params.Location, t.Params.NumResults, t.Params.MaxAge())
		cancel()
		if err != nil {
			siteErrs = append(siteErrs, fmt.Sprintf("%s: %v", site, err))
			m.logger.Printf("scrape task=%s site=%s status=error err=%v", id, site, err)
			continue
		}

		okSites++
		added := 0
		for _, raw := range raws {
			p := Normalize(raw, src.Name())
			if IsDuplicate(p, results) {
				continue
			}
			p.Skills = m.extractor.Extract(p.Title + " " + p.Description)
			p.RelevanceScore = Score(p, profile)
			p.SearchQuery = t.Params.Query()
			results = append(results, p)
			added++
		}
		m.logger.Printf("scrape task=%s site=%s status=ok postings=%d", id, site, added)
	}

	now := time.Now().UTC()
	t.CompletedAt = &now

	if okSites == 0 {
		t.Status = StatusFailed
		t.Error = aggregateErrors(siteErrs)
		t.Results = []posting.Posting{}
	} else {
		t.Status = StatusCompleted
		t.Results = results

		if m.writer != nil && len(results) > 0 {
			if _, err := m.writer.UpsertPostings(ctx, results); err != nil {
				m.logger.Printf("scrape task=%s status=error step=persist err=%v", id, err)
				t.Status = StatusFailed
				t.Error = "failed to persist scrape results"
				t.Results = []posting.Posting{}
			}
		}
	}

	if err := m.store.Update(ctx, t); err != nil {
		m.logger.Printf("scrape task=%s status=error step=finalize err=%v", id, err)
		return err
	}

	m.logger.Printf("scrape task=%s status=%s results=%d sites_ok=%d sites_failed=%d duration=%s",
		id, t.Status, len(t.Results), okSites, len(siteErrs), now.Sub(t.CreatedAt))

	if m.notify != nil {
		m.notify(t.Clone())
	}
	if t.Status == StatusFailed {
		return fmt.Errorf("scrape task %s failed: %s", id, t.Error)
	}
	return nil
}

func aggregateErrors(siteErrs []string) string {
	if len(siteErrs) == 0 {
		return "all sites failed"
	}
	return "all sites failed: " + strings.Join(siteErrs, "; ")
}
