package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/dto"
	"github.com/dheerajram13/job-app-tracker/internal/delivery/http/middleware"
	"github.com/dheerajram13/job-app-tracker/internal/domain/user"
	"github.com/dheerajram13/job-app-tracker/internal/pkg/response"
	"github.com/dheerajram13/job-app-tracker/internal/usecase"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Get)
	r.Put("/", h.Update)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

// Update replaces the caller's profile wholesale.
func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.ProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Update(c.Context(), user.Profile{
		UserID:      userID,
		Skills:      req.Skills,
		SearchTerms: req.SearchTerms,
		Location:    req.Location,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}
