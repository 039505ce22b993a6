package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/dheerajram13/job-app-tracker/internal/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process liveness plus the state of each backing
// service. A dead dependency degrades the payload but the endpoint
// still answers 200; orchestrators only need liveness here.
type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]any{
		"status":   "ok",
		"database": pingState(ctx, h.db),
		"redis":    pingState(ctx, h.redis),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func pingState(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "up"
}
