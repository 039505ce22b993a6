package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
	"github.com/dheerajram13/job-app-tracker/internal/pkg/response"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
)

type fakeScrapeTaskUsecase struct {
	submitID  string
	submitErr error
	tasks     map[string]scrape.Task
}

func (f *fakeScrapeTaskUsecase) Submit(_ context.Context, _ uuid.UUID, params scrape.Params) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.submitID, nil
}

func (f *fakeScrapeTaskUsecase) GetStatus(_ context.Context, id string) (scrape.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return scrape.Task{}, scrape.ErrTaskNotFound
	}
	return t, nil
}

func newTestApp(uc *fakeScrapeTaskUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	NewScrapeTaskHandler(uc).RegisterRoutes(app.Group("/api/v1/scrape-tasks"))
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) response.SemanticResponse {
	t.Helper()
	var env response.SemanticResponse
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestScrapeTaskSubmit_Accepted(t *testing.T) {
	app := newTestApp(&fakeScrapeTaskUsecase{submitID: "task-123"})

	body, _ := json.Marshal(map[string]any{"search_terms": []string{"Backend Engineer"}})
	req := httptest.NewRequest("POST", "/api/v1/scrape-tasks/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload %T", env.Data)
	}
	if data["task_id"] != "task-123" {
		t.Fatalf("task_id = %v", data["task_id"])
	}
	if data["status"] != "pending" {
		t.Fatalf("status = %v", data["status"])
	}
}

func TestScrapeTaskSubmit_InvalidParams(t *testing.T) {
	app := newTestApp(&fakeScrapeTaskUsecase{submitErr: scrape.ErrInvalidParams})

	body, _ := json.Marshal(map[string]any{"search_terms": []string{}})
	req := httptest.NewRequest("POST", "/api/v1/scrape-tasks/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestScrapeTaskSubmit_QueueFullReturnsServiceUnavailable(t *testing.T) {
	app := newTestApp(&fakeScrapeTaskUsecase{submitErr: scrape.ErrQueueFull})

	body, _ := json.Marshal(map[string]any{"search_terms": []string{"Backend Engineer"}})
	req := httptest.NewRequest("POST", "/api/v1/scrape-tasks/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	if env.Status != fiber.StatusServiceUnavailable {
		t.Fatalf("envelope status = %d", env.Status)
	}
}

func TestScrapeTaskGetStatus_UnknownID(t *testing.T) {
	app := newTestApp(&fakeScrapeTaskUsecase{tasks: map[string]scrape.Task{}})

	req := httptest.NewRequest("GET", "/api/v1/scrape-tasks/does-not-exist", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	if env.Status != fiber.StatusNotFound {
		t.Fatalf("envelope status = %d", env.Status)
	}
}

func TestScrapeTaskGetStatus_CompletedCarriesResults(t *testing.T) {
	done := time.Now().UTC()
	uc := &fakeScrapeTaskUsecase{tasks: map[string]scrape.Task{
		"task-1": {
			ID:          "task-1",
			Status:      scrape.StatusCompleted,
			CreatedAt:   done.Add(-time.Minute),
			CompletedAt: &done,
		},
	}}
	app := newTestApp(uc)

	req := httptest.NewRequest("GET", "/api/v1/scrape-tasks/task-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload %T", env.Data)
	}
	if data["status"] != "completed" {
		t.Fatalf("task status = %v", data["status"])
	}
	if _, hasErr := data["error"]; hasErr {
		t.Fatalf("completed task should not carry an error field")
	}
}

func TestScrapeTaskGetStatus_FailedCarriesError(t *testing.T) {
	done := time.Now().UTC()
	uc := &fakeScrapeTaskUsecase{tasks: map[string]scrape.Task{
		"task-2": {
			ID:          "task-2",
			Status:      scrape.StatusFailed,
			Error:       "all sites failed: site_a: timeout",
			CreatedAt:   done.Add(-time.Minute),
			CompletedAt: &done,
		},
	}}
	app := newTestApp(uc)

	req := httptest.NewRequest("GET", "/api/v1/scrape-tasks/task-2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	env := decodeEnvelope(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload %T", env.Data)
	}
	if data["error"] != "all sites failed: site_a: timeout" {
		t.Fatalf("error = %v", data["error"])
	}
	if _, hasResults := data["results"]; hasResults {
		t.Fatalf("failed task should not carry results")
	}
}
