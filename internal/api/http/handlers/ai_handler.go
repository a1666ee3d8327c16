package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/api/dto"
	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/service"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

const (
	minPromptLength = 10
	maxPromptLength = 1000
)

// AIHandler exposes AI content generation endpoints.
type AIHandler struct {
	service *service.AIService
}

// NewAIHandler constructs handler.
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{service: aiService}
}

// GenerateBackstory POST /ai/generate/backstory.
func (h *AIHandler) GenerateBackstory(c *fiber.Ctx) error {
	return h.generateText(c, h.service.GenerateBackstory)
}

// GenerateNPC POST /ai/generate/npc.
func (h *AIHandler) GenerateNPC(c *fiber.Ctx) error {
	return h.generateText(c, h.service.GenerateNPC)
}

// GenerateImage POST /ai/generate/image.
func (h *AIHandler) GenerateImage(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	prompt, err := parsePrompt(c)
	if err != nil {
		return err
	}

	result, err := h.service.GenerateImage(c.Context(), td.UserID, prompt)
	if err != nil {
		return err
	}
	return c.JSON(dto.GenerateImageResponse{
		RequestID: result.RequestID,
		ImageURL:  result.ImageURL,
	})
}

type generateFunc func(ctx context.Context, userID, prompt string) (*service.GenerationResult, error)

func (h *AIHandler) generateText(c *fiber.Ctx, generate generateFunc) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	prompt, err := parsePrompt(c)
	if err != nil {
		return err
	}

	result, err := generate(c.Context(), td.UserID, prompt)
	if err != nil {
		return err
	}
	return c.JSON(dto.GenerateResponse{
		RequestID: result.RequestID,
		Content:   result.Content,
		Cached:    result.Cached,
	})
}

func parsePrompt(c *fiber.Ctx) (string, error) {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	prompt := strings.TrimSpace(req.Prompt)
	if len(prompt) < minPromptLength || len(prompt) > maxPromptLength {
		return "", apperrors.NewValidationError("prompt must be 10-1000 characters", nil)
	}
	return prompt, nil
}
