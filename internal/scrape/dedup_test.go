package scrape

import (
	"testing"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
)

func TestIsDuplicate_ByURL(t *testing.T) {
	existing := []posting.Posting{
		{Title: "Backend Engineer", Company: "Acme", URL: "https://example.com/jobs/1"},
	}

	p := posting.Posting{Title: "Totally Different Role", Company: "Other", URL: "https://example.com/jobs/1"}
	if !IsDuplicate(p, existing) {
		t.Fatalf("same URL should be a duplicate")
	}

	p.URL = "https://example.com/jobs/2"
	if IsDuplicate(p, existing) {
		t.Fatalf("different URL and fingerprint should not be a duplicate")
	}
}

func TestIsDuplicate_ByFingerprint(t *testing.T) {
	existing := []posting.Posting{
		{Title: "Backend Engineer", Company: "Acme Corp", Location: "Sydney", URL: "https://a.example.com/1"},
	}

	p := posting.Posting{
		Title:    "  backend   ENGINEER ",
		Company:  "acme corp",
		Location: "SYDNEY",
		URL:      "https://b.example.com/other",
	}
	if !IsDuplicate(p, existing) {
		t.Fatalf("normalized title+company+location should match despite differing URL")
	}
}

func TestIsDuplicate_EmptyPostingNeverMatches(t *testing.T) {
	existing := []posting.Posting{{Title: "Backend Engineer", Company: "Acme"}}
	if IsDuplicate(posting.Posting{}, existing) {
		t.Fatalf("posting with no URL and empty fingerprint matched")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(posting.Posting{Title: "Backend  Engineer", Company: "Acme", Location: "Remote"})
	b := Fingerprint(posting.Posting{Title: "backend engineer", Company: " ACME ", Location: "remote"})
	if a != b {
		t.Fatalf("fingerprints differ: %q vs %q", a, b)
	}
	if Fingerprint(posting.Posting{}) != "" {
		t.Fatalf("empty posting should have empty fingerprint")
	}
}
