package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/config"
	"github.com/spec-kit/roleforge-api/internal/domain"
	"github.com/spec-kit/roleforge-api/internal/repository"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// invalidCredentialsMsg is shared by every credential check so a caller cannot
// tell an unknown email from a wrong password.
const invalidCredentialsMsg = "invalid email or password"

// RegisterInput describes a new account request.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// TokenPair bundles the issued credentials.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// AuthService coordinates registration, login and token refresh flows against
// the user store.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes, cfg.RefreshTokenTTLDays),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account with the default role and issues a token
// pair. Email and username are pre-checked, but the store's uniqueness
// constraint remains the final arbiter for concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflict("user with this email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, nil, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, nil, apperrors.NewConflict("user with this email already exists", nil)
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, nil, apperrors.NewConflict("username already taken", nil)
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized(invalidCredentialsMsg)
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, apperrors.NewUnauthorized(invalidCredentialsMsg)
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh verifies a refresh token and mints a new pair. The user record is
// re-fetched so a role change since issuance takes effect immediately; a
// deleted user invalidates the token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	tokenData, err := s.tokens.VerifyToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.NewUnauthorized("could not validate credentials")
	}

	user, err := s.users.GetByID(ctx, tokenData.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("could not validate credentials")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

// GetUser loads the current account for an authenticated request.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("could not validate credentials")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password before storing the new hash.
// A mismatch is reported without revealing which check failed.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("could not validate credentials")
		}
		return err
	}
	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return apperrors.NewUnauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, hash)
}

// UpdateProfile applies a partial profile update, re-checking username
// uniqueness when it changes.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd domain.UserProfileUpdate) (*domain.User, error) {
	if upd.Username != nil {
		existing, err := s.users.GetByUsername(ctx, *upd.Username)
		if err == nil && existing.ID != userID {
			return nil, apperrors.NewConflict("username already taken", nil)
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	user, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperrors.NewConflict("username already taken", nil)
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issueTokens(user *domain.User) (*TokenPair, error) {
	access, _, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}
