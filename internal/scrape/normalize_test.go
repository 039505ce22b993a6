package scrape

import (
	"testing"

	"github.com/dheerajram13/job-app-tracker/internal/scrape/source"
)

func TestNormalize_MapsSiteFieldNames(t *testing.T) {
	raw := source.RawRecord{
		"job_title":         "Backend Engineer",
		"organization_name": "Acme",
		"region":            "Sydney",
		"href":              "https://example.com/jobs/1",
		"snippet":           "Go and PostgreSQL",
		"publication_date":  "2026-08-30T10:00:00",
	}

	p := Normalize(raw, "weworkremotely")

	if p.Title != "Backend Engineer" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Company != "Acme" {
		t.Fatalf("company = %q", p.Company)
	}
	if p.Location != "Sydney" {
		t.Fatalf("location = %q", p.Location)
	}
	if p.URL != "https://example.com/jobs/1" {
		t.Fatalf("url = %q", p.URL)
	}
	if p.Description != "Go and PostgreSQL" {
		t.Fatalf("description = %q", p.Description)
	}
	if p.DatePosted != "2026-08-30T10:00:00" {
		t.Fatalf("date_posted = %q", p.DatePosted)
	}
	if p.Source != "weworkremotely" {
		t.Fatalf("source = %q", p.Source)
	}
	if p.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected generated id")
	}
}

func TestNormalize_MissingFieldsDefaultToEmpty(t *testing.T) {
	p := Normalize(source.RawRecord{}, "devto")
	if p.Title != "" || p.Company != "" || p.Location != "" || p.URL != "" || p.Description != "" || p.DatePosted != "" {
		t.Fatalf("expected empty canonical fields, got %+v", p)
	}
	if p.Skills == nil || len(p.Skills) != 0 {
		t.Fatalf("skills should be an empty slice")
	}
}

func TestNormalize_FirstAliasWins(t *testing.T) {
	raw := source.RawRecord{
		"title":     "Primary",
		"job_title": "Secondary",
		"url":       "",
		"link":      "https://example.com/fallback",
	}
	p := Normalize(raw, "site")
	if p.Title != "Primary" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.URL != "https://example.com/fallback" {
		t.Fatalf("blank alias should fall through, url = %q", p.URL)
	}
}
