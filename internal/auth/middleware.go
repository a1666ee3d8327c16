package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

const tokenDataKey = "auth_token_data"

// Middleware validates bearer access tokens before any business logic runs.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Failures share one
// client-visible message to keep individual checks indistinguishable.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	tokenData, err := m.tokens.VerifyToken(parts[1], TokenTypeAccess)
	if err != nil {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	c.Locals(tokenDataKey, tokenData)
	return c.Next()
}

// TokenDataFromContext retrieves the verified token data for the request.
func TokenDataFromContext(c *fiber.Ctx) (*TokenData, bool) {
	val := c.Locals(tokenDataKey)
	if val == nil {
		return nil, false
	}
	td, ok := val.(*TokenData)
	return td, ok
}
