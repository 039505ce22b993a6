package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// WeWorkRemotely scrapes the weworkremotely.com search results page with
// colly. The board has no JSON API; listings carry title, company and
// region spans plus a relative posting date.
type WeWorkRemotely struct {
	baseURL     string
	allowedHost string
}

func NewWeWorkRemotely() *WeWorkRemotely {
	s := &WeWorkRemotely{baseURL: "https://weworkremotely.com"}
	s.allowedHost = hostFromBaseURL(s.baseURL)
	return s
}

func NewWeWorkRemotelyWithBaseURL(base string) *WeWorkRemotely {
	s := NewWeWorkRemotely()
	base = strings.TrimSpace(base)
	if base != "" {
		s.baseURL = base
		s.allowedHost = hostFromBaseURL(base)
	}
	return s
}

func (s *WeWorkRemotely) Name() string { return "weworkremotely" }

func (s *WeWorkRemotely) Fetch(ctx context.Context, terms []string, location string, limit int, maxAge time.Duration) ([]RawRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	listURL := strings.TrimRight(s.baseURL, "/") + "/remote-jobs/search?term=" + url.QueryEscape(strings.Join(terms, " "))

	c := colly.NewCollector(
		colly.AllowedDomains(s.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*" + s.allowedHost + "*", Parallelism: 2, RandomDelay: 750 * time.Millisecond, Delay: 400 * time.Millisecond})

	base := strings.TrimRight(s.baseURL, "/")
	out := make([]RawRecord, 0, limit)
	var scrapeErr error

	c.OnHTML("section.jobs li", func(e *colly.HTMLElement) {
		if len(out) >= limit {
			return
		}

		link := strings.TrimSpace(e.ChildAttr("a[href]", "href"))
		if link == "" || !strings.Contains(link, "/remote-jobs/") {
			return
		}
		if strings.HasPrefix(link, "/") {
			link = base + link
		}

		title := strings.TrimSpace(e.ChildText("span.title"))
		company := strings.TrimSpace(e.ChildText("span.company"))
		region := strings.TrimSpace(e.ChildText("span.region"))
		posted := strings.TrimSpace(e.ChildAttr("time", "datetime"))
		if posted == "" {
			posted = strings.TrimSpace(e.ChildText("span.date"))
		}
		if title == "" {
			return
		}
		if location != "" && region != "" &&
			!strings.Contains(strings.ToLower(region), strings.ToLower(location)) &&
			!strings.EqualFold(location, "remote") {
			return
		}

		out = append(out, RawRecord{
			"title":   title,
			"company": company,
			"region":  region,
			"href":    link,
			"date":    posted,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		if scrapeErr == nil {
			scrapeErr = fmt.Errorf("weworkremotely list: %w", err)
		}
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()

	if len(out) == 0 && scrapeErr != nil {
		return nil, scrapeErr
	}
	return out, nil
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(strings.TrimSpace(base), "https://")
	}
	return u.Host
}
