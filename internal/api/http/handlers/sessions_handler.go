package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/api/dto"
	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/service"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// SessionsHandler manages game session endpoints.
type SessionsHandler struct {
	service *service.SessionService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(sessionService *service.SessionService) *SessionsHandler {
	return &SessionsHandler{service: sessionService}
}

// Create POST /campaigns/:id/sessions.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	gs, err := h.service.ScheduleSession(c.Context(), td.UserID, c.Params("id"), &domain.GameSession{
		Title:           req.Title,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewSessionResponse(gs))
}

// List GET /campaigns/:id/sessions.
func (h *SessionsHandler) List(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := parsePagination(c)
	sessions, err := h.service.ListSessions(c.Context(), td.UserID, c.Params("id"), limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, dto.NewSessionResponse(&sessions[i]))
	}
	return c.JSON(fiber.Map{"sessions": items})
}

// Get GET /sessions/:id.
func (h *SessionsHandler) Get(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	gs, err := h.service.GetSession(c.Context(), td.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(gs))
}

// Update PUT /sessions/:id.
func (h *SessionsHandler) Update(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	upd := domain.SessionUpdate{
		Title:           req.Title,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if req.Status != nil {
		status := domain.SessionStatus(*req.Status)
		upd.Status = &status
	}

	gs, err := h.service.UpdateSession(c.Context(), td.UserID, c.Params("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(gs))
}

// Delete DELETE /sessions/:id.
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteSession(c.Context(), td.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Session deleted"})
}
