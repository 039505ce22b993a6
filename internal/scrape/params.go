package scrape

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidParams = errors.New("invalid scrape parameters")

// Params is the search request carried by a Task. Skills are the
// caller's tracked skills, attached at submission so relevance scoring
// can weigh skill overlap.
type Params struct {
	SearchTerms    []string `json:"search_terms"`
	Location       string   `json:"location,omitempty"`
	Sites          []string `json:"sites,omitempty"`
	NumResults     int      `json:"num_results,omitempty"`
	FreshnessHours int      `json:"freshness_hours,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

// Defaults fill the optional Params fields at submission time.
type Defaults struct {
	Location       string
	Sites          []string
	NumResults     int
	FreshnessHours int
}

// Normalize trims and validates the request. Search terms are required;
// everything else falls back to the given defaults. Site names are
// lowercased so registry lookups are case-insensitive.
func (p Params) Normalize(d Defaults) (Params, error) {
	terms := make([]string, 0, len(p.SearchTerms))
	for _, t := range p.SearchTerms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return Params{}, ErrInvalidParams
	}
	p.SearchTerms = terms

	p.Location = strings.TrimSpace(p.Location)
	if p.Location == "" {
		p.Location = d.Location
	}

	sites := make([]string, 0, len(p.Sites))
	for _, s := range p.Sites {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		sites = append(sites, s)
	}
	if len(sites) == 0 {
		sites = append(sites, d.Sites...)
	}
	p.Sites = sites

	skillList := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		skillList = append(skillList, s)
	}
	p.Skills = skillList

	if p.NumResults <= 0 {
		p.NumResults = d.NumResults
	}
	if p.FreshnessHours <= 0 {
		p.FreshnessHours = d.FreshnessHours
	}

	return p, nil
}

// MaxAge converts the freshness window to a duration.
func (p Params) MaxAge() time.Duration {
	return time.Duration(p.FreshnessHours) * time.Hour
}

// Query joins the search terms into the single query string handed to
// site adapters that only accept one term.
func (p Params) Query() string {
	return strings.Join(p.SearchTerms, " ")
}
