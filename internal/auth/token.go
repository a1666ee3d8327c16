package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

// TokenType tags a credential as access or refresh.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Verification failures, distinguishable so the endpoint layer can log the
// precise cause while returning a uniform 401 to the client.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrWrongTokenType  = errors.New("wrong token type")
	ErrMalformedClaims = errors.New("malformed token claims")
)

// TokenManager issues and validates signed JWT credentials. Tokens are never
// persisted; validity is determined entirely by signature and expiry.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTLMinutes, refreshTTLDays int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 30
	}
	if refreshTTLDays <= 0 {
		refreshTTLDays = 7
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenData is the verified projection of a credential, rebuilt on every
// verification call.
type TokenData struct {
	UserID string
	Email  string
	Role   domain.Role
}

// GenerateAccessToken builds and signs a short-lived role-bearing token.
func (tm *TokenManager) GenerateAccessToken(userID, email string, role domain.Role) (string, time.Time, error) {
	return tm.generate(userID, email, string(role), TokenTypeAccess, tm.accessTTL)
}

// GenerateRefreshToken builds and signs a long-lived token carrying only
// subject and email.
func (tm *TokenManager) GenerateRefreshToken(userID, email string) (string, time.Time, error) {
	return tm.generate(userID, email, "", TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID, email, role string, tokenType TokenType, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyToken validates signature, expiry and type tag, and returns the
// decoded token data. Tokens of the wrong kind are rejected even when
// otherwise valid; a missing subject marks the payload malformed.
func (tm *TokenManager) VerifyToken(tokenStr string, expected TokenType) (*TokenData, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	if claims.Subject == "" {
		return nil, ErrMalformedClaims
	}

	role := claims.Role
	if role == "" {
		role = string(domain.RoleUser)
	}
	return &TokenData{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   domain.Role(role),
	}, nil
}

// AccessTTL exposes the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration {
	return tm.accessTTL
}
