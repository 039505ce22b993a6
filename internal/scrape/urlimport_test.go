package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestURLImporterParse_ReadsListingPage(t *testing.T) {
	page := `<html><head>
	<title>Boring fallback title</title>
	<meta property="og:title" content="Backend Engineer at Acme">
	<meta name="description" content="Python and PostgreSQL backend role">
	</head><body><h1>Backend Engineer</h1></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	imp := NewURLImporter(nil)
	p, err := imp.Parse(context.Background(), srv.URL+"/jobs/1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.Title != "Backend Engineer" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.Company != "Acme" {
		t.Fatalf("company = %q", p.Company)
	}
	if p.URL != srv.URL+"/jobs/1" {
		t.Fatalf("url = %q", p.URL)
	}
	if p.Description != "Python and PostgreSQL backend role" {
		t.Fatalf("description = %q", p.Description)
	}
	if p.Source != "import" {
		t.Fatalf("source = %q", p.Source)
	}

	want := map[string]bool{"python": false, "postgresql": false}
	for _, s := range p.Skills {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for s, found := range want {
		if !found {
			t.Fatalf("skill %q not extracted: %v", s, p.Skills)
		}
	}
}

func TestURLImporterParse_FallsBackToDocumentTitle(t *testing.T) {
	page := `<html><head><title>Data Engineer</title></head>
	<body>Help us move data around.</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	imp := NewURLImporter(nil)
	p, err := imp.Parse(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Title != "Data Engineer" {
		t.Fatalf("title = %q", p.Title)
	}
	// No og:site_name and no "at" split, so the host stands in.
	if p.Company == "" {
		t.Fatalf("expected host fallback for company")
	}
	if p.Description != "Help us move data around." {
		t.Fatalf("description = %q", p.Description)
	}
}

func TestURLImporterParse_RejectsBadURLs(t *testing.T) {
	imp := NewURLImporter(nil)
	for _, raw := range []string{"", "not a url", "ftp://example.com/x", "/relative/path"} {
		if _, err := imp.Parse(context.Background(), raw); !errors.Is(err, ErrInvalidImportURL) {
			t.Fatalf("url %q: expected ErrInvalidImportURL, got %v", raw, err)
		}
	}
}

func TestURLImporterParse_FetchFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	imp := NewURLImporter(nil)
	if _, err := imp.Parse(context.Background(), srv.URL+"/gone"); err == nil {
		t.Fatalf("expected fetch error for 404 page")
	}
}
