package scrape

import (
	"strings"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

// IsDuplicate reports whether p already appears in existing. Exact URL
// match is the primary key; when the URL is absent or misses, a
// lowercased whitespace-collapsed title|company|location fingerprint is
// the fallback. The caller discards the newer occurrence; fields are
// never merged.
func IsDuplicate(p posting.Posting, existing []posting.Posting) bool {
	url := strings.TrimSpace(p.URL)
	fp := Fingerprint(p)

	for _, e := range existing {
		if url != "" && url == strings.TrimSpace(e.URL) {
			return true
		}
		if fp != "" && fp == Fingerprint(e) {
			return true
		}
	}
	return false
}

// Fingerprint builds the secondary dedup key. Empty when the posting has
// no title, company or location at all.
func Fingerprint(p posting.Posting) string {
	parts := []string{collapse(p.Title), collapse(p.Company), collapse(p.Location)}
	if parts[0] == "" && parts[1] == "" && parts[2] == "" {
		return ""
	}
	return strings.Join(parts, "|")
}

func collapse(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
