// Package application models user-tracked job applications and their
// status pipeline.
package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status values mirror the columns on the tracker board.
type Status string

const (
	StatusBookmarked  Status = "Bookmarked"
	StatusApplied     Status = "Applied"
	StatusPhoneScreen Status = "Phone Screen"
	StatusTechnical   Status = "Technical Interview"
	StatusOnsite      Status = "On-site"
	StatusOffer       Status = "Offer"
	StatusRejected    Status = "Rejected"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusBookmarked, StatusApplied, StatusPhoneScreen, StatusTechnical, StatusOnsite, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Application is a user-tracked record. URL is copied from the originating
// Posting when promoted via "apply"; no other link is kept.
type Application struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes"`
	URL         string    `json:"url"`
	DateApplied time.Time `json:"date_applied"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
