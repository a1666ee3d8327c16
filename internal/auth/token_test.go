package auth

import (
	"errors"
	"testing"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30, 7)

	t.Run("access token preserves identity", func(t *testing.T) {
		token, expiresAt, err := tm.GenerateAccessToken("user-123", "gm@example.com", domain.RoleGM)
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		if expiresAt.IsZero() {
			t.Fatal("expected non-zero expiry")
		}

		data, err := tm.VerifyToken(token, TokenTypeAccess)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if data.UserID != "user-123" {
			t.Errorf("UserID = %q, want %q", data.UserID, "user-123")
		}
		if data.Email != "gm@example.com" {
			t.Errorf("Email = %q, want %q", data.Email, "gm@example.com")
		}
		if data.Role != domain.RoleGM {
			t.Errorf("Role = %q, want %q", data.Role, domain.RoleGM)
		}
	})

	t.Run("refresh token verifies as refresh", func(t *testing.T) {
		token, _, err := tm.GenerateRefreshToken("user-123", "gm@example.com")
		if err != nil {
			t.Fatalf("GenerateRefreshToken: %v", err)
		}
		data, err := tm.VerifyToken(token, TokenTypeRefresh)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if data.UserID != "user-123" {
			t.Errorf("UserID = %q, want %q", data.UserID, "user-123")
		}
	})
}

func TestVerifyTokenRejections(t *testing.T) {
	tm := NewTokenManager("test-secret", 30, 7)

	t.Run("access token rejected as refresh", func(t *testing.T) {
		token, _, err := tm.GenerateAccessToken("user-123", "gm@example.com", domain.RoleGM)
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		if _, err := tm.VerifyToken(token, TokenTypeRefresh); !errors.Is(err, ErrWrongTokenType) {
			t.Errorf("err = %v, want ErrWrongTokenType", err)
		}
	})

	t.Run("refresh token rejected as access", func(t *testing.T) {
		token, _, err := tm.GenerateRefreshToken("user-123", "gm@example.com")
		if err != nil {
			t.Fatalf("GenerateRefreshToken: %v", err)
		}
		if _, err := tm.VerifyToken(token, TokenTypeAccess); !errors.Is(err, ErrWrongTokenType) {
			t.Errorf("err = %v, want ErrWrongTokenType", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &TokenManager{secret: []byte("test-secret"), accessTTL: -1}
		token, _, err := expired.GenerateAccessToken("user-123", "gm@example.com", domain.RoleGM)
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		if _, err := tm.VerifyToken(token, TokenTypeAccess); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("err = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewTokenManager("another-secret", 30, 7)
		token, _, err := other.GenerateAccessToken("user-123", "gm@example.com", domain.RoleGM)
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		if _, err := tm.VerifyToken(token, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := tm.VerifyToken("not.a.jwt", TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		token, _, err := tm.generate("", "gm@example.com", "gm", TokenTypeAccess, tm.accessTTL)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := tm.VerifyToken(token, TokenTypeAccess); !errors.Is(err, ErrMalformedClaims) {
			t.Errorf("err = %v, want ErrMalformedClaims", err)
		}
	})

	t.Run("missing role defaults to user", func(t *testing.T) {
		token, _, err := tm.generate("user-123", "gm@example.com", "", TokenTypeAccess, tm.accessTTL)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		data, err := tm.VerifyToken(token, TokenTypeAccess)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if data.Role != domain.RoleUser {
			t.Errorf("Role = %q, want %q", data.Role, domain.RoleUser)
		}
	})
}
