package posting

import (
	"time"

	"github.com/google/uuid"
)

// Posting is a scraped job listing, not yet tracked by the user.
type Posting struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	URL            string    `json:"url"`
	Description    string    `json:"description"`
	DatePosted     string    `json:"date_posted"`
	Source         string    `json:"source"`
	Skills         []string  `json:"skills"`
	RelevanceScore int       `json:"relevance_score"`
	SearchQuery    string    `json:"search_query,omitempty"`
	ScrapedAt      time.Time `json:"scraped_at"`
}

// Profile is the target the relevance scorer matches postings against.
type Profile struct {
	SearchTerms []string
	Skills      []string
}
