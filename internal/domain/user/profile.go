package user

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the job-search preferences that feed relevance scoring:
// tracked skills, preferred search terms and location.
type Profile struct {
	UserID      uuid.UUID `json:"user_id"`
	Skills      []string  `json:"skills"`
	SearchTerms []string  `json:"search_terms"`
	Location    string    `json:"location"`
	UpdatedAt   time.Time `json:"updated_at"`
}
