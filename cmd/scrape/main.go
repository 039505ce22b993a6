// One-shot scrape runner: submits a task, polls it to a terminal state
// and exits. Useful for cron jobs outside the server and for smoke
// testing site adapters.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/dheerajram13/job-app-tracker/internal/app"
	"github.com/dheerajram13/job-app-tracker/internal/config"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

func main() {
	terms := flag.String("terms", "", "comma-separated search terms (required)")
	location := flag.String("location", "", "job location")
	sites := flag.String("sites", "", "comma-separated site names, default all")
	results := flag.Int("results", 0, "max results per site")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	// The runner has no HTTP surface; the server's cron handles recurring
	// scrapes, not this process.
	cfg.Scheduler.Enabled = false

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = container.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := container.Start(ctx); err != nil {
		logger.Fatalf("failed to start: %v", err)
	}

	params := scrape.Params{
		SearchTerms: splitArg(*terms),
		Location:    *location,
		Sites:       splitArg(*sites),
		NumResults:  *results,
	}
	id, err := container.Manager.Submit(ctx, params)
	if err != nil {
		logger.Fatalf("submit failed: %v", err)
	}
	logger.Printf("scrape submitted task=%s", id)

	for {
		select {
		case <-ctx.Done():
			logger.Fatalf("deadline reached before task finished")
		case <-time.After(2 * time.Second):
		}

		t, err := container.Manager.GetStatus(ctx, id)
		if err != nil {
			logger.Fatalf("poll failed: %v", err)
		}
		if !t.Status.Terminal() {
			continue
		}

		if t.Status == scrape.StatusFailed {
			logger.Fatalf("task failed: %s", t.Error)
		}
		logger.Printf("task completed postings=%d", len(t.Results))
		return
	}
}

func splitArg(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
