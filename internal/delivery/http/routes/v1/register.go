package v1

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/handler"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	ScrapeTasks  *handler.ScrapeTaskHandler
	Postings     *handler.PostingHandler
	Applications *handler.ApplicationHandler
	Profile      *handler.ProfileHandler
}

// Register mounts the v1 API. Everything except auth sits behind the
// JWT middleware.
func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", authMw.Middleware())

	if h.ScrapeTasks != nil {
		h.ScrapeTasks.RegisterRoutes(protected.Group("/scrape-tasks"))
	}
	if h.Postings != nil {
		h.Postings.RegisterRoutes(protected.Group("/postings"))
	}
	if h.Applications != nil {
		h.Applications.RegisterRoutes(protected.Group("/applications"))
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(protected.Group("/profile"))
	}
}
