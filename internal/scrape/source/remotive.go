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

// Remotive queries the remotive.com public API, which supports search and
// result limits server-side.
type Remotive struct {
	client  *http.Client
	apiBase string
}

func NewRemotive() *Remotive {
	return &Remotive{
		client:  &http.Client{Timeout: 15 * time.Second},
		apiBase: "https://remotive.com",
	}
}

func NewRemotiveWithBaseURL(base string) *Remotive {
	s := NewRemotive()
	base = strings.TrimSpace(base)
	if base != "" {
		s.apiBase = base
	}
	return s
}

func (s *Remotive) Name() string { return "remotive" }

type remotiveJob struct {
	ID                        int    `json:"id"`
	URL                       string `json:"url"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	PublicationDate           string `json:"publication_date"`
	Description               string `json:"description"`
}

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

func (s *Remotive) Fetch(ctx context.Context, terms []string, location string, limit int, maxAge time.Duration) ([]RawRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	q := url.Values{}
	q.Set("search", strings.Join(terms, " "))
	q.Set("limit", strconv.Itoa(limit))
	endpoint := strings.TrimRight(s.apiBase, "/") + "/api/remote-jobs?" + q.Encode()

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
		return nil, fmt.Errorf("remotive search: unexpected status %d", resp.StatusCode)
	}

	var body remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	cutoff := time.Time{}
	if maxAge > 0 {
		cutoff = time.Now().UTC().Add(-maxAge)
	}

	out := make([]RawRecord, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		if len(out) >= limit {
			break
		}
		pub := strings.TrimSpace(j.PublicationDate)
		if !cutoff.IsZero() && pub != "" {
			if at, err := time.Parse("2006-01-02T15:04:05", pub); err == nil && at.Before(cutoff) {
				continue
			}
		}
		if location != "" && strings.TrimSpace(j.CandidateRequiredLocation) != "" &&
			!strings.Contains(strings.ToLower(j.CandidateRequiredLocation), strings.ToLower(location)) &&
			!strings.EqualFold(location, "remote") {
			continue
		}

		out = append(out, RawRecord{
			"title":                       j.Title,
			"company_name":                j.CompanyName,
			"candidate_required_location": j.CandidateRequiredLocation,
			"url":                         j.URL,
			"description":                 j.Description,
			"publication_date":            pub,
		})
	}

	return out, nil
}
