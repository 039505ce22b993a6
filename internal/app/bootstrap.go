package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/handler"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/routes"
	v1 "github.com/dheerajram13/job-app-tracker/internal/delivery/http/routes/v1"
	"github.com/dheerajram13/job-app-tracker/internal/pkg/jwt"
	"github.com/dheerajram13/job-app-tracker/internal/usecase"
	"github.com/dheerajram13/job-app-tracker/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New assembles the fiber app on top of an already-built container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	jwtSvc := jwt.NewHMACService(c.Config.JWT)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	authUC := usecase.NewAuthUsecase(c.Users, jwtSvc)
	scrapeUC := usecase.NewScrapeTaskUsecase(c.Manager, c.Profiles, c.Logger)
	postingUC := usecase.NewPostingUsecase(c.Postings, c.Applications, c.Profiles, c.Importer, c.Redis, c.Logger)
	applicationUC := usecase.NewApplicationUsecase(c.Applications)
	profileUC := usecase.NewProfileUsecase(c.Profiles)

	handlers := v1.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		ScrapeTasks:  handler.NewScrapeTaskHandler(scrapeUC),
		Postings:     handler.NewPostingHandler(postingUC),
		Applications: handler.NewApplicationHandler(applicationUC),
		Profile:      handler.NewProfileHandler(profileUC),
	}

	health := handler.NewHealthHandler(c.DB, c.Redis)
	wsHandler := ws.NewHandler(c.Hub, c.Logger)

	routes.NewRegistry(health, handlers, authMw, wsHandler.HandleTasksWS).Register(f)

	return &App{Fiber: f, Container: c}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
