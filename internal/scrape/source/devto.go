package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Devto pulls the dev.to job listings API. The API cannot filter by search
// term or location, so both are applied client-side.
type Devto struct {
	client  *http.Client
	apiBase string
}

func NewDevto() *Devto {
	return &Devto{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiBase: "https://dev.to",
	}
}

func NewDevtoWithBaseURL(base string) *Devto {
	s := NewDevto()
	base = strings.TrimSpace(base)
	if base != "" {
		s.apiBase = base
	}
	return s
}

func (s *Devto) Name() string { return "devto" }

type devtoListing struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Organization string  `json:"organization_name"`
	Company      string  `json:"company_name"`
	Location     string  `json:"location"`
	BodyMarkdown string  `json:"body_markdown"`
	PublishedAt  *string `json:"published_at"`
	URL          string  `json:"url"`
	Slug         string  `json:"slug"`
}

func (s *Devto) Fetch(ctx context.Context, terms []string, location string, limit int, maxAge time.Duration) ([]RawRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	perPage := limit * 3
	if perPage > 100 {
		perPage = 100
	}
	endpoint := strings.TrimRight(s.apiBase, "/") + "/api/listings?category=jobs&per_page=" + strconv.Itoa(perPage) + "&page=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devto listings: unexpected status %d", resp.StatusCode)
	}

	var listings []devtoListing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, err
	}

	cutoff := time.Time{}
	if maxAge > 0 {
		cutoff = time.Now().UTC().Add(-maxAge)
	}

	out := make([]RawRecord, 0, limit)
	for _, l := range listings {
		if len(out) >= limit {
			break
		}
		company := strings.TrimSpace(l.Organization)
		if company == "" {
			company = strings.TrimSpace(l.Company)
		}

		published := ""
		if l.PublishedAt != nil {
			published = strings.TrimSpace(*l.PublishedAt)
		}
		if !cutoff.IsZero() && published != "" {
			if at, err := time.Parse(time.RFC3339, published); err == nil && at.Before(cutoff) {
				continue
			}
		}

		if !matchesTerms(l.Title+" "+l.BodyMarkdown, terms) {
			continue
		}
		if location != "" && strings.TrimSpace(l.Location) != "" &&
			!strings.Contains(strings.ToLower(l.Location), strings.ToLower(location)) {
			continue
		}

		link := strings.TrimSpace(l.URL)
		if link == "" && l.Slug != "" {
			link = strings.TrimRight(s.apiBase, "/") + "/listings/jobs/" + url.PathEscape(l.Slug)
		}

		out = append(out, RawRecord{
			"title":             l.Title,
			"organization_name": company,
			"location":          l.Location,
			"url":               link,
			"body_markdown":     l.BodyMarkdown,
			"published_at":      published,
		})
	}

	return out, nil
}
