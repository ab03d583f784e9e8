package auth

import (
	"testing"
	"time"

	"github.com/afristar/helpdesk/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:      "u-1",
		StaffID: "M10256",
		Email:   "elvis@example.com",
		Name:    "Elvis Customer",
		Role:    domain.RoleCustomer,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60, 15)
	token, exp, err := tm.GenerateSession(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry should be in the future")
	}

	claims, err := tm.ParseScoped(token, ScopeSession)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != domain.RoleCustomer || claims.StaffID != "M10256" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Email != "elvis@example.com" {
		t.Errorf("email not embedded: %q", claims.Email)
	}
}

func TestResetTokenRejectedAsSession(t *testing.T) {
	tm := NewTokenManager("secret", 60, 15)
	token, _, err := tm.GenerateReset("u-1")
	if err != nil {
		t.Fatalf("generate reset: %v", err)
	}
	if _, err := tm.ParseScoped(token, ScopeSession); err == nil {
		t.Fatal("reset-scoped token must not validate as a session token")
	}
	claims, err := tm.ParseScoped(token, ScopePasswordReset)
	if err != nil {
		t.Fatalf("parse reset: %v", err)
	}
	if claims.UserID != "u-1" {
		t.Errorf("unexpected user id %q", claims.UserID)
	}
	if claims.Role != "" || claims.StaffID != "" {
		t.Errorf("reset token should not carry role or staff id: %+v", claims)
	}
}

func TestSessionTokenRejectedAsReset(t *testing.T) {
	tm := NewTokenManager("secret", 60, 15)
	token, _, err := tm.GenerateSession(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.ParseScoped(token, ScopePasswordReset); err == nil {
		t.Fatal("session token must not be accepted by the reset flow")
	}
}

func TestTamperedTokenFails(t *testing.T) {
	tm := NewTokenManager("secret", 60, 15)
	other := NewTokenManager("different-secret", 60, 15)
	token, _, err := tm.GenerateSession(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.ParseScoped(token, ScopeSession); err == nil {
		t.Fatal("token signed with another secret must fail")
	}
	if _, err := tm.ParseScoped(token+"x", ScopeSession); err == nil {
		t.Fatal("malformed token must fail")
	}
}

func TestExpiredTokenFails(t *testing.T) {
	tm := &TokenManager{secret: []byte("secret"), sessionTTL: -time.Minute, resetTTL: time.Minute}
	token, _, err := tm.GenerateSession(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.ParseScoped(token, ScopeSession); err == nil {
		t.Fatal("expired token must fail")
	}
}
