package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/user"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

// ScrapeTaskUsecase fronts the scrape manager so handlers depend on a
// narrow, fakeable contract rather than the manager itself.
type ScrapeTaskUsecase interface {
	Submit(ctx context.Context, userID uuid.UUID, params scrape.Params) (string, error)
	GetStatus(ctx context.Context, id string) (scrape.Task, error)
}

// TaskManager is the slice of *scrape.Manager the usecase drives.
type TaskManager interface {
	Submit(ctx context.Context, params scrape.Params) (string, error)
	GetStatus(ctx context.Context, id string) (scrape.Task, error)
}

// ProfileReader supplies the caller's tracked skills at submission.
type ProfileReader interface {
	Get(ctx context.Context, userID uuid.UUID) (user.Profile, error)
}

type ScrapeTask struct {
	manager  TaskManager
	profiles ProfileReader
	logger   *log.Logger
}

func NewScrapeTaskUsecase(manager TaskManager, profiles ProfileReader, logger *log.Logger) *ScrapeTask {
	return &ScrapeTask{manager: manager, profiles: profiles, logger: logger}
}

// Submit attaches the caller's profile skills to the params before
// handing off, so scraped postings score against what the user tracks.
// A missing or unreadable profile never blocks the scrape.
func (u *ScrapeTask) Submit(ctx context.Context, userID uuid.UUID, params scrape.Params) (string, error) {
	if len(params.Skills) == 0 && u.profiles != nil && userID != uuid.Nil {
		prof, err := u.profiles.Get(ctx, userID)
		switch {
		case err == nil:
			params.Skills = prof.Skills
		case !errors.Is(err, repository.ErrProfileNotFound):
			if u.logger != nil {
				u.logger.Printf("profile lookup failed user=%s err=%v", userID, err)
			}
		}
	}
	return u.manager.Submit(ctx, params)
}

func (u *ScrapeTask) GetStatus(ctx context.Context, id string) (scrape.Task, error) {
	return u.manager.GetStatus(ctx, id)
}
