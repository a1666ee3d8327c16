package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/api/dto"
	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/service"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// CampaignsHandler manages campaign endpoints.
type CampaignsHandler struct {
	service *service.CampaignService
}

// NewCampaignsHandler constructs handler.
func NewCampaignsHandler(campaignService *service.CampaignService) *CampaignsHandler {
	return &CampaignsHandler{service: campaignService}
}

// Create POST /campaigns.
func (h *CampaignsHandler) Create(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	cp, err := h.service.CreateCampaign(c.Context(), td.UserID, &domain.Campaign{
		Name:        req.Name,
		Description: req.Description,
		Setting:     req.Setting,
		MaxPlayers:  req.MaxPlayers,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCampaignResponse(cp))
}

// List GET /campaigns.
func (h *CampaignsHandler) List(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, offset := parsePagination(c)
	campaigns, err := h.service.ListCampaigns(c.Context(), td.UserID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, dto.NewCampaignResponse(&campaigns[i]))
	}
	return c.JSON(fiber.Map{"campaigns": items})
}

// Get GET /campaigns/:id.
func (h *CampaignsHandler) Get(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	cp, err := h.service.GetCampaign(c.Context(), td.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCampaignResponse(cp))
}

// Update PUT /campaigns/:id.
func (h *CampaignsHandler) Update(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	upd := domain.CampaignUpdate{
		Name:        req.Name,
		Description: req.Description,
		Setting:     req.Setting,
		MaxPlayers:  req.MaxPlayers,
	}
	if req.Status != nil {
		status := domain.CampaignStatus(*req.Status)
		upd.Status = &status
	}

	cp, err := h.service.UpdateCampaign(c.Context(), td.UserID, c.Params("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCampaignResponse(cp))
}

// Delete DELETE /campaigns/:id.
func (h *CampaignsHandler) Delete(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteCampaign(c.Context(), td.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Campaign deleted"})
}

func parsePagination(c *fiber.Ctx) (int, int) {
	limit := 20
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
