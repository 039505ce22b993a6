package dto

import (
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

type SubmitScrapeTaskRequest struct {
	SearchTerms    []string `json:"search_terms"`
	Location       string   `json:"location"`
	Sites          []string `json:"sites"`
	NumResults     int      `json:"num_results"`
	FreshnessHours int      `json:"freshness_hours"`
}

func (r SubmitScrapeTaskRequest) ToParams() scrape.Params {
	return scrape.Params{
		SearchTerms:    r.SearchTerms,
		Location:       r.Location,
		Sites:          r.Sites,
		NumResults:     r.NumResults,
		FreshnessHours: r.FreshnessHours,
	}
}

type SubmitScrapeTaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// ScrapeTaskResponse is the poller payload. Results appear only on a
// completed task, error only on a failed one.
type ScrapeTaskResponse struct {
	TaskID      string            `json:"task_id"`
	Status      string            `json:"status"`
	Results     []posting.Posting `json:"results,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

func NewScrapeTaskResponse(t scrape.Task) ScrapeTaskResponse {
	out := ScrapeTaskResponse{
		TaskID:      t.ID,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
	switch t.Status {
	case scrape.StatusCompleted:
		out.Results = t.Results
	case scrape.StatusFailed:
		out.Error = t.Error
	}
	return out
}
