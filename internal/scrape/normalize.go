package scrape

import (
	"strings"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
	"github.com/dheerajram13/job-app-tracker/internal/scrape/source"

	"github.com/google/uuid"
)

// Field aliases seen across site adapters, first match wins. Unknown
// fields stay behind; missing ones default to "".
var (
	titleKeys    = []string{"title", "job_title", "position", "name"}
	companyKeys  = []string{"company", "company_name", "organization_name", "organization", "employer"}
	locationKeys = []string{"location", "job_location", "region", "candidate_required_location", "place"}
	urlKeys      = []string{"url", "link", "job_url", "href"}
	descKeys     = []string{"description", "desc", "summary", "snippet", "body", "body_markdown"}
	dateKeys     = []string{"date", "date_posted", "posted_at", "published_at", "publication_date", "created_at"}
)

// Normalize maps a raw scraped record onto the canonical posting shape.
// It never fails: unparseable fragments are carried through as raw text
// so partial data still reaches the user.
func Normalize(raw source.RawRecord, site string) posting.Posting {
	return posting.Posting{
		ID:          uuid.New(),
		Title:       pick(raw, titleKeys),
		Company:     pick(raw, companyKeys),
		Location:    pick(raw, locationKeys),
		URL:         pick(raw, urlKeys),
		Description: pick(raw, descKeys),
		DatePosted:  pick(raw, dateKeys),
		Source:      strings.TrimSpace(site),
		Skills:      []string{},
		ScrapedAt:   time.Now().UTC(),
	}
}

func pick(raw source.RawRecord, keys []string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			v = strings.TrimSpace(v)
			if v != "" {
				return v
			}
		}
	}
	return ""
}
