package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/handler"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
	v1 "github.com/dheerajram13/job-app-tracker/internal/delivery/http/routes/v1"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	authMw *middleware.AuthMiddleware
	ws     fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, authMw *middleware.AuthMiddleware, ws fiber.Handler) *Registry {
	return &Registry{health: health, v1: handlers, authMw: authMw, ws: ws}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1, r.authMw)

	if r.ws != nil {
		app.Get("/ws/tasks", r.ws)
	}
}
