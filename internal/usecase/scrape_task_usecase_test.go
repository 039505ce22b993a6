package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/user"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

type fakeTaskManager struct {
	lastParams scrape.Params
	submits    int
	id         string
	err        error
}

func (f *fakeTaskManager) Submit(_ context.Context, p scrape.Params) (string, error) {
	f.submits++
	f.lastParams = p
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeTaskManager) GetStatus(context.Context, string) (scrape.Task, error) {
	return scrape.Task{}, scrape.ErrTaskNotFound
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestScrapeTaskSubmit_AttachesProfileSkills(t *testing.T) {
	userID := uuid.New()
	profiles := newMockProfileRepo()
	profiles.byUser[userID] = user.Profile{UserID: userID, Skills: []string{"python", "go"}}

	mgr := &fakeTaskManager{id: "task-1"}
	uc := NewScrapeTaskUsecase(mgr, profiles, discardLogger())

	id, err := uc.Submit(context.Background(), userID, scrape.Params{SearchTerms: []string{"Backend Engineer"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "task-1" {
		t.Fatalf("id = %s", id)
	}
	if !reflect.DeepEqual(mgr.lastParams.Skills, []string{"python", "go"}) {
		t.Fatalf("skills = %v", mgr.lastParams.Skills)
	}
}

func TestScrapeTaskSubmit_ExplicitSkillsWin(t *testing.T) {
	userID := uuid.New()
	profiles := newMockProfileRepo()
	profiles.byUser[userID] = user.Profile{UserID: userID, Skills: []string{"python"}}

	mgr := &fakeTaskManager{id: "task-1"}
	uc := NewScrapeTaskUsecase(mgr, profiles, discardLogger())

	_, err := uc.Submit(context.Background(), userID, scrape.Params{
		SearchTerms: []string{"Backend Engineer"},
		Skills:      []string{"rust"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !reflect.DeepEqual(mgr.lastParams.Skills, []string{"rust"}) {
		t.Fatalf("skills = %v", mgr.lastParams.Skills)
	}
	if profiles.gets != 0 {
		t.Fatalf("profile looked up despite explicit skills")
	}
}

func TestScrapeTaskSubmit_ProfileFailureNeverBlocksScrape(t *testing.T) {
	mgr := &fakeTaskManager{id: "task-1"}
	broken := newMockProfileRepo()
	broken.err = errors.New("connection refused")
	uc := NewScrapeTaskUsecase(mgr, broken, discardLogger())

	id, err := uc.Submit(context.Background(), uuid.New(), scrape.Params{SearchTerms: []string{"Backend Engineer"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "task-1" {
		t.Fatalf("id = %s", id)
	}
	if len(mgr.lastParams.Skills) != 0 {
		t.Fatalf("skills = %v", mgr.lastParams.Skills)
	}
}

func TestScrapeTaskSubmit_AnonymousSkipsProfileLookup(t *testing.T) {
	mgr := &fakeTaskManager{id: "task-1"}
	profiles := newMockProfileRepo()
	uc := NewScrapeTaskUsecase(mgr, profiles, discardLogger())

	if _, err := uc.Submit(context.Background(), uuid.Nil, scrape.Params{SearchTerms: []string{"Backend Engineer"}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if profiles.gets != 0 {
		t.Fatalf("profile looked up for anonymous submission")
	}
	if mgr.submits != 1 {
		t.Fatalf("submits = %d", mgr.submits)
	}
}
