package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Wellfound scrapes wellfound.com role listings. The board is fully
// JS-rendered, so a headless browser collects the listing anchors and
// card text instead of plain HTTP.
type Wellfound struct {
	siteBase string
}

func NewWellfound() *Wellfound {
	return &Wellfound{siteBase: "https://wellfound.com"}
}

func (s *Wellfound) Name() string { return "wellfound" }

func (s *Wellfound) Fetch(ctx context.Context, terms []string, location string, limit int, maxAge time.Duration) ([]RawRecord, error) {
	if s == nil {
		return nil, fmt.Errorf("nil source")
	}
	if limit <= 0 {
		limit = 20
	}

	slug := strings.ToLower(strings.Join(strings.Fields(strings.Join(terms, " ")), "-"))
	pageURL := strings.TrimRight(s.siteBase, "/") + "/role/" + url.PathEscape(slug)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var cards []map[string]string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('a[href*="/jobs/"]'))
			.map(a => {
				const card = a.closest('[data-test="StartupResult"], li, article') || a;
				return {
					href: a.getAttribute('href') || '',
					title: (a.textContent || '').trim(),
					text: (card.textContent || '').trim().slice(0, 400)
				};
			})
			.filter(c => c.href && c.title)`, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("wellfound headless: %w", err)
	}

	base := strings.TrimRight(s.siteBase, "/")
	seen := map[string]struct{}{}
	out := make([]RawRecord, 0, limit)

	for _, c := range cards {
		if len(out) >= limit {
			break
		}
		href := strings.TrimSpace(c["href"])
		if href == "" {
			continue
		}
		if strings.HasPrefix(href, "/") {
			href = base + href
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}

		title := strings.TrimSpace(c["title"])
		text := strings.TrimSpace(c["text"])
		if !matchesTerms(title+" "+text, terms) {
			continue
		}

		out = append(out, RawRecord{
			"title":   title,
			"job_url": href,
			"snippet": text,
		})
	}

	return out, nil
}
