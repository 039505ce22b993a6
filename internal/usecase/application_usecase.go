package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/application"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
)

type ApplicationInput struct {
	Title       string
	Company     string
	Status      string
	Notes       string
	URL         string
	DateApplied *time.Time
}

type ApplicationUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, in ApplicationInput) (application.Application, error)
	Get(ctx context.Context, userID, id uuid.UUID) (application.Application, error)
	List(ctx context.Context, userID uuid.UUID, status string) ([]application.Application, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ApplicationInput) (application.Application, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Application struct {
	applications repository.ApplicationRepository
}

func NewApplicationUsecase(applications repository.ApplicationRepository) *Application {
	return &Application{applications: applications}
}

func (u *Application) Create(ctx context.Context, userID uuid.UUID, in ApplicationInput) (application.Application, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	if title == "" || company == "" {
		return application.Application{}, ErrInvalidInput
	}

	status := application.StatusBookmarked
	if s := strings.TrimSpace(in.Status); s != "" {
		parsed, err := application.ParseStatus(s)
		if err != nil {
			return application.Application{}, ErrInvalidInput
		}
		status = parsed
	}

	now := time.Now().UTC()
	dateApplied := now
	if in.DateApplied != nil {
		dateApplied = in.DateApplied.UTC()
	}

	a := application.Application{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Company:     company,
		Status:      status,
		Notes:       in.Notes,
		URL:         strings.TrimSpace(in.URL),
		DateApplied: dateApplied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.applications.Create(ctx, a); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (u *Application) Get(ctx context.Context, userID, id uuid.UUID) (application.Application, error) {
	return u.applications.GetByID(ctx, userID, id)
}

func (u *Application) List(ctx context.Context, userID uuid.UUID, status string) ([]application.Application, error) {
	var st application.Status
	if s := strings.TrimSpace(status); s != "" {
		parsed, err := application.ParseStatus(s)
		if err != nil {
			return nil, ErrInvalidInput
		}
		st = parsed
	}
	return u.applications.ListByUser(ctx, userID, st)
}

// Update replaces the mutable fields. Any status may follow any other;
// the board imposes no transition order.
func (u *Application) Update(ctx context.Context, userID, id uuid.UUID, in ApplicationInput) (application.Application, error) {
	a, err := u.applications.GetByID(ctx, userID, id)
	if err != nil {
		return application.Application{}, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		a.Title = title
	}
	if company := strings.TrimSpace(in.Company); company != "" {
		a.Company = company
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		parsed, err := application.ParseStatus(s)
		if err != nil {
			return application.Application{}, ErrInvalidInput
		}
		a.Status = parsed
	}
	if in.Notes != "" {
		a.Notes = in.Notes
	}
	if url := strings.TrimSpace(in.URL); url != "" {
		a.URL = url
	}
	if in.DateApplied != nil {
		a.DateApplied = in.DateApplied.UTC()
	}
	a.UpdatedAt = time.Now().UTC()

	if err := u.applications.Update(ctx, a); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (u *Application) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return u.applications.Delete(ctx, userID, id)
}
