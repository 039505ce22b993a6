// Package source holds the site adapters behind the scrape pipeline.
// Each adapter queries one external job board and returns raw records in
// whatever field names the site uses; the normalizer maps them to the
// canonical posting shape.
package source

import (
	"context"
	"sort"
	"strings"
	"time"
)

// RawRecord is an unnormalized scraped listing, keyed by site-specific
// field names.
type RawRecord map[string]string

type Source interface {
	Name() string
	Fetch(ctx context.Context, terms []string, location string, limit int, maxAge time.Duration) ([]RawRecord, error)
}

// Registry resolves site names (case-insensitive) to adapters.
type Registry struct {
	byName map[string]Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{byName: make(map[string]Source, len(sources))}
	for _, s := range sources {
		if s == nil {
			continue
		}
		r.byName[strings.ToLower(strings.TrimSpace(s.Name()))] = s
	}
	return r
}

func (r *Registry) Get(name string) (Source, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names returns the registered site names, sorted for stable defaults.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// matchesTerms reports whether any search term appears in the haystack,
// used by adapters whose APIs cannot filter server-side.
func matchesTerms(haystack string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack = strings.ToLower(haystack)
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		ok := true
		for _, w := range strings.Fields(t) {
			if !strings.Contains(haystack, w) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
