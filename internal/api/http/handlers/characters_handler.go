package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/api/dto"
	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/repository"
	"github.com/spec-kit/roleforge-api/internal/service"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// CharactersHandler manages character sheet endpoints.
type CharactersHandler struct {
	service *service.CharacterService
}

// NewCharactersHandler constructs handler.
func NewCharactersHandler(characterService *service.CharacterService) *CharactersHandler {
	return &CharactersHandler{service: characterService}
}

// Create POST /characters.
func (h *CharactersHandler) Create(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCharacterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ch := &domain.Character{
		Name:             req.Name,
		Race:             req.Race,
		Class:            req.Class,
		Level:            req.Level,
		Background:       req.Background,
		Alignment:        req.Alignment,
		AbilityScores:    req.AbilityScores,
		HitPoints:        req.HitPoints,
		ArmorClass:       req.ArmorClass,
		ExperiencePoints: req.ExperiencePoints,
		Skills:           req.Skills,
		Equipment:        req.Equipment,
		Spells:           req.Spells,
		Notes:            req.Notes,
		AvatarURL:        req.AvatarURL,
	}
	created, err := h.service.CreateCharacter(c.Context(), td.UserID, ch)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCharacterResponse(created))
}

// List GET /characters.
func (h *CharactersHandler) List(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := parseCharacterQuery(c)
	characters, total, err := h.service.ListCharacters(c.Context(), td.UserID, filter)
	if err != nil {
		return err
	}

	items := make([]dto.CharacterResponse, 0, len(characters))
	for i := range characters {
		items = append(items, dto.NewCharacterResponse(&characters[i]))
	}
	return c.JSON(dto.CharacterListResponse{
		Characters: items,
		Total:      total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Get GET /characters/:id.
func (h *CharactersHandler) Get(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ch, err := h.service.GetCharacter(c.Context(), td.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCharacterResponse(ch))
}

// Update PUT /characters/:id.
func (h *CharactersHandler) Update(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateCharacterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ch, err := h.service.UpdateCharacter(c.Context(), td.UserID, c.Params("id"), domain.CharacterUpdate{
		Name:             req.Name,
		Level:            req.Level,
		HitPoints:        req.HitPoints,
		ArmorClass:       req.ArmorClass,
		ExperiencePoints: req.ExperiencePoints,
		Skills:           req.Skills,
		Equipment:        req.Equipment,
		Spells:           req.Spells,
		Notes:            req.Notes,
		AvatarURL:        req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCharacterResponse(ch))
}

// Delete DELETE /characters/:id.
func (h *CharactersHandler) Delete(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteCharacter(c.Context(), td.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Character deleted"})
}

func parseCharacterQuery(c *fiber.Ctx) repository.CharacterFilter {
	filter := repository.CharacterFilter{Limit: 20}
	if class := c.Query("class"); class != "" {
		filter.Class = &class
	}
	if race := c.Query("race"); race != "" {
		filter.Race = &race
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	return filter
}
