// Package scheduler wires up the cron entry that periodically submits a
// scrape task for the configured default search.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dheerajram13/job-app-tracker/internal/config"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

const runLockTTL = 5 * time.Minute

// Submitter is the slice of the scrape manager the scheduler needs.
type Submitter interface {
	Submit(ctx context.Context, params scrape.Params) (string, error)
}

// Locker keeps overlapping ticks across replicas from double-submitting.
// Pass nil when no shared lock backend is available; runs then proceed
// unguarded, accepting duplicates over silence.
type Locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

type Scheduler struct {
	cron      *cron.Cron
	submitter Submitter
	locker    Locker
	cfg       config.SchedulerConfig
	logger    *log.Logger
}

func New(submitter Submitter, locker Locker, cfg config.SchedulerConfig, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:      cron.New(),
		submitter: submitter,
		locker:    locker,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the cron entry. A failing or panicking run is logged
// and isolated; the entry keeps firing on schedule.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := s.cfg.CronSpec
	if spec == "" {
		spec = "@daily"
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Printf("[scheduler] cron started spec=%s terms=%v", spec, s.cfg.SearchTerms)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Printf("[scheduler] cron stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("[scheduler] run panic recovered: %v", r)
		}
	}()

	if s.locker != nil {
		ok, err := s.locker.SetIfNotExists(ctx, "scheduler:run:lock", time.Now().UTC().Format(time.RFC3339), runLockTTL)
		if err != nil {
			s.logger.Printf("[scheduler] lock error, proceeding without lock: %v", err)
		} else if !ok {
			s.logger.Printf("[scheduler] run skipped, lock held by another replica")
			return
		}
	}

	id, err := s.submitter.Submit(ctx, scrape.Params{
		SearchTerms: s.cfg.SearchTerms,
		Location:    s.cfg.Location,
	})
	if err != nil {
		s.logger.Printf("[scheduler] scheduled submit failed: %v", err)
		return
	}
	s.logger.Printf("[scheduler] scheduled scrape submitted task=%s", id)
}
