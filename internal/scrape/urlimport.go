package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/domain/posting"
	"github.com/dheerajram13/job-app-tracker/internal/skills"
)

// ErrInvalidImportURL is returned for urls that are not absolute http
// or https addresses.
var ErrInvalidImportURL = errors.New("invalid import url")

const importSource = "import"

// URLImporter turns an arbitrary job listing page into an unscored
// posting. It reads the page's OpenGraph tags first and falls back to
// the document title and body text, so boards without structured
// markup still import with usable fields.
type URLImporter struct {
	extractor *skills.Extractor
	timeout   time.Duration
}

func NewURLImporter(extractor *skills.Extractor) *URLImporter {
	if extractor == nil {
		extractor = skills.NewExtractor()
	}
	return &URLImporter{extractor: extractor, timeout: 20 * time.Second}
}

func (i *URLImporter) Parse(ctx context.Context, rawURL string) (posting.Posting, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return posting.Posting{}, ErrInvalidImportURL
	}

	var page struct {
		title       string
		ogTitle     string
		siteName    string
		description string
		bodyText    string
	}

	c := colly.NewCollector()
	c.SetRequestTimeout(i.timeout)

	c.OnHTML("html", func(e *colly.HTMLElement) {
		page.title = strings.TrimSpace(e.ChildText("head title"))
		page.ogTitle = strings.TrimSpace(e.ChildAttr(`meta[property="og:title"]`, "content"))
		page.siteName = strings.TrimSpace(e.ChildAttr(`meta[property="og:site_name"]`, "content"))
		page.description = strings.TrimSpace(e.ChildAttr(`meta[name="description"]`, "content"))
		page.bodyText = strings.Join(strings.Fields(e.ChildText("body")), " ")
	})

	var fetchErr error
	c.OnError(func(_ *colly.Response, err error) {
		if fetchErr == nil {
			fetchErr = err
		}
	})

	if ctx.Err() != nil {
		return posting.Posting{}, ctx.Err()
	}
	if err := c.Visit(u.String()); err != nil {
		return posting.Posting{}, fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	c.Wait()
	if fetchErr != nil {
		return posting.Posting{}, fmt.Errorf("fetch %s: %w", u.Host, fetchErr)
	}

	title := page.ogTitle
	if title == "" {
		title = page.title
	}
	if title == "" {
		return posting.Posting{}, fmt.Errorf("%s: page has no recognizable job title", u.Host)
	}

	company := page.siteName
	if company == "" {
		// Boards commonly render "Role at Company" titles.
		if at := strings.LastIndex(title, " at "); at > 0 {
			company = strings.TrimSpace(title[at+4:])
			title = strings.TrimSpace(title[:at])
		}
	}
	if company == "" {
		company = u.Host
	}

	description := page.description
	if description == "" {
		description = clip(page.bodyText, 2000)
	}

	p := posting.Posting{
		ID:          uuid.New(),
		Title:       title,
		Company:     company,
		URL:         u.String(),
		Description: description,
		Source:      importSource,
		ScrapedAt:   time.Now().UTC(),
	}
	p.Skills = i.extractor.Extract(p.Title + " " + p.Description)
	return p, nil
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
