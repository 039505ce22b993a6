package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/dto"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
	"github.com/dheerajram13/job-app-tracker/internal/pkg/response"
	"github.com/dheerajram13/job-app-tracker/internal/repository"
	"github.com/dheerajram13/job-app-tracker/internal/usecase"
)

type PostingHandler struct {
	uc usecase.PostingUsecase
}

func NewPostingHandler(uc usecase.PostingUsecase) *PostingHandler {
	return &PostingHandler{uc: uc}
}

func (h *PostingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/top-skills", h.TopSkills)
	r.Post("/parse-url", h.ParseURL)
	r.Get("/:id", h.GetByID)
	r.Post("/:id/apply", h.Apply)
}

func (h *PostingHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	minScore, err := parseQueryIntStrict(c, "min_score", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.List(c.Context(), repository.PostingFilter{
		Search:   c.Query("search"),
		Source:   c.Query("source"),
		Location: c.Query("location"),
		MinScore: minScore,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PostingHandler) TopSkills(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	skills, err := h.uc.TopSkills(c.Context(), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, skills)
}

func (h *PostingHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Posting not found", nil, err)
	}

	p, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Posting not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

// Apply promotes a posting into the caller's tracked applications.
func (h *PostingHandler) Apply(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Posting not found", nil, err)
	}

	a, err := h.uc.Apply(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostingNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Posting not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, a)
}

// ParseURL imports a single listing from an arbitrary job page url.
func (h *PostingHandler) ParseURL(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.ParseURLRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.ImportFromURL(c.Context(), userID, req.URL)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "A valid http or https url is required", nil, err)
		}
		if errors.Is(err, usecase.ErrImportFailed) {
			return middleware.NewAppError(fiber.StatusBadGateway, "Could not fetch or parse the listing page", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, p)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n, nil
}
