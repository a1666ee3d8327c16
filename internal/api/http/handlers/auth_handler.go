package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/api/dto"
	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/service"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

const minPasswordLength = 8

// AuthHandler exposes registration, login and account endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateRegister(req); err != nil {
		return err
	}

	_, pair, err := h.auth.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(tokenResponse(pair))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	_, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(pair))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}

	pair, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(pair))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.auth.GetUser(c.Context(), td.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateMe handles PUT /auth/me.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if len(trimmed) < 3 || len(trimmed) > 50 {
			return apperrors.NewValidationError("username must be 3-50 characters", nil)
		}
		req.Username = &trimmed
	}

	user, err := h.auth.UpdateProfile(c.Context(), td.UserID, domain.UserProfileUpdate{
		Username:  req.Username,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	td, ok := auth.TokenDataFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" {
		return apperrors.NewValidationError("current_password required", nil)
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperrors.NewValidationError("new_password must be at least 8 characters", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), td.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout is a
// client-side discard; no server state changes.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if _, ok := auth.TokenDataFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func validateRegister(req dto.RegisterRequest) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("valid email required", nil)
	}
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 50 {
		return apperrors.NewValidationError("username must be 3-50 characters", nil)
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	return nil
}

func tokenResponse(pair *service.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}
