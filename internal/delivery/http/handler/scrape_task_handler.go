package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/dto"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
	"github.com/dheerajram13/job-app-tracker/internal/pkg/response"
	"github.com/dheerajram13/job-app-tracker/internal/scrape"
	"github.com/dheerajram13/job-app-tracker/internal/usecase"
)

type ScrapeTaskHandler struct {
	uc usecase.ScrapeTaskUsecase
}

func NewScrapeTaskHandler(uc usecase.ScrapeTaskUsecase) *ScrapeTaskHandler {
	return &ScrapeTaskHandler{uc: uc}
}

func (h *ScrapeTaskHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Submit)
	r.Get("/:task_id", h.GetStatus)
}

// Submit accepts the search request and returns 202 immediately; the
// scrape runs on the worker pool and is polled via GetStatus. The
// caller's profile skills ride along for relevance scoring when the
// request is authenticated.
func (h *ScrapeTaskHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitScrapeTaskRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	userID, _ := middleware.UserIDFromCtx(c)
	id, err := h.uc.Submit(c.Context(), userID, req.ToParams())
	if err != nil {
		if errors.Is(err, scrape.ErrInvalidParams) {
			return middleware.NewAppError(fiber.StatusBadRequest, "search_terms is required", nil, err)
		}
		if errors.Is(err, scrape.ErrQueueFull) {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "Scrape queue is full, retry later", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.SubmitScrapeTaskResponse{
		TaskID: id,
		Status: string(scrape.StatusPending),
	})
}

func (h *ScrapeTaskHandler) GetStatus(c fiber.Ctx) error {
	id := c.Params("task_id")

	task, err := h.uc.GetStatus(c.Context(), id)
	if err != nil {
		if errors.Is(err, scrape.ErrTaskNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Scrape task not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScrapeTaskResponse(task))
}
