package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/afristar/helpdesk/internal/domain"
)

// Scope restricts what a token is good for. A password_reset token is
// accepted only by the reset endpoint and never grants API access.
type Scope string

const (
	ScopeSession       Scope = "session"
	ScopePasswordReset Scope = "password_reset"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, sessionTTLMin, resetTTLMin int) *TokenManager {
	if sessionTTLMin <= 0 {
		sessionTTLMin = 60
	}
	if resetTTLMin <= 0 {
		resetTTLMin = 15
	}
	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: time.Duration(sessionTTLMin) * time.Minute,
		resetTTL:   time.Duration(resetTTLMin) * time.Minute,
	}
}

// Claims describes the JWT payload. Role/Email/StaffID are empty on
// reset-scoped tokens.
type Claims struct {
	UserID  string      `json:"uid"`
	Role    domain.Role `json:"role,omitempty"`
	Email   string      `json:"email,omitempty"`
	StaffID string      `json:"staff_id,omitempty"`
	Scope   Scope       `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateSession signs a full session token for the user.
func (tm *TokenManager) GenerateSession(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.sessionTTL)
	claims := &Claims{
		UserID:  user.ID,
		Role:    user.Role,
		Email:   user.Email,
		StaffID: user.StaffID,
		Scope:   ScopeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return tm.sign(claims, expiresAt)
}

// GenerateReset signs a token scoped exclusively to password reset.
func (tm *TokenManager) GenerateReset(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.resetTTL)
	claims := &Claims{
		UserID: userID,
		Scope:  ScopePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return tm.sign(claims, expiresAt)
}

func (tm *TokenManager) sign(claims *Claims, expiresAt time.Time) (string, time.Time, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseScoped validates the token and requires the given scope. Expired,
// malformed, or wrongly scoped tokens all fail.
func (tm *TokenManager) ParseScoped(tokenStr string, scope Scope) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Scope != scope {
		return nil, errors.New("token scope mismatch")
	}
	return claims, nil
}
