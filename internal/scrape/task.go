// Package scrape owns the asynchronous scrape-task lifecycle: a submitted
// search becomes a Task that a background worker drives through
// pending → running → completed/failed, with results normalized,
// deduplicated and scored along the way.
package scrape

import (
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is one scrape execution. Once a terminal status is written the
// record is immutable; pollers only ever read snapshots.
type Task struct {
	ID          string            `json:"id"`
	Status      Status            `json:"status"`
	Params      Params            `json:"params"`
	Results     []posting.Posting `json:"results"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// Clone returns a snapshot safe to hand to callers while the worker keeps
// mutating its own copy.
func (t Task) Clone() Task {
	out := t
	if t.Results != nil {
		out.Results = make([]posting.Posting, len(t.Results))
		copy(out.Results, t.Results)
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
