package service

import (
	"context"
	"testing"

	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/config"
	"github.com/afristar/helpdesk/internal/domain"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	cfg := config.AuthConfig{
		JWTSecret:          "test-secret",
		SessionTokenTTLMin: 60,
		ResetTokenTTLMin:   15,
		BcryptCost:         4, // min cost keeps tests fast
	}
	return NewAuthService(cfg, users), users
}

func seedUser(t *testing.T, users *fakeUserRepo, staffID, email, password string, role domain.Role, temporary bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{
		StaffID:           staffID,
		Email:             email,
		Name:              "Seeded User",
		PasswordHash:      hash,
		Role:              role,
		TemporaryPassword: temporary,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return user
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, users := newAuthFixture()
	seedUser(t, users, "ADMIN01", "john@example.com", "SecurePass123", domain.RoleAdmin, false)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"duplicate staff id", RegisterInput{Email: "new@example.com", Password: "password123", Name: "New", StaffID: "ADMIN01"}},
		{"duplicate email", RegisterInput{Email: "john@example.com", Password: "password123", Name: "New", StaffID: "M99999"}},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.input); !isValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	user, err := svc.Register(context.Background(), RegisterInput{
		Email: "fresh@example.com", Password: "password123", Name: "Fresh", StaffID: "M12345",
	})
	if err != nil {
		t.Fatalf("unique register: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("registered role = %s, want CUSTOMER", user.Role)
	}
	if user.ID == "" {
		t.Error("expected assigned user id")
	}
}

func TestLoginIssuesSessionToken(t *testing.T) {
	svc, users := newAuthFixture()
	seedUser(t, users, "ADMIN01", "john@example.com", "SecurePass123", domain.RoleAdmin, false)

	result, err := svc.Login(context.Background(), "ADMIN01", "SecurePass123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.RequireReset {
		t.Fatal("seeded admin should not require reset")
	}
	if result.Token == "" {
		t.Fatal("expected session token")
	}

	claims, err := svc.TokenManager().ParseScoped(result.Token, auth.ScopeSession)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Role != domain.RoleAdmin || claims.StaffID != "ADMIN01" || claims.Email != "john@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginFailsClosed(t *testing.T) {
	svc, users := newAuthFixture()
	seedUser(t, users, "M10256", "elvis@example.com", "password123", domain.RoleCustomer, false)

	if _, err := svc.Login(context.Background(), "M10256", "wrong"); !statusOf(401)(err) {
		t.Errorf("wrong password: expected 401, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "NOBODY", "password123"); !statusOf(401)(err) {
		t.Errorf("unknown staff id: expected 401, got %v", err)
	}
}

func TestTemporaryPasswordRequiresReset(t *testing.T) {
	svc, users := newAuthFixture()
	seeded := seedUser(t, users, "M20000", "temp@example.com", "TempPass123", domain.RoleCustomer, true)

	result, err := svc.Login(context.Background(), "M20000", "TempPass123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !result.RequireReset {
		t.Fatal("expected requireReset")
	}
	if result.Token != "" {
		t.Fatal("no session token may be issued before reset")
	}
	if result.ResetToken == "" {
		t.Fatal("expected reset-scoped token")
	}

	// The reset token must not pass session validation.
	if _, err := svc.TokenManager().ParseScoped(result.ResetToken, auth.ScopeSession); err == nil {
		t.Fatal("reset token validated as session token")
	}

	claims, err := svc.TokenManager().ParseScoped(result.ResetToken, auth.ScopePasswordReset)
	if err != nil {
		t.Fatalf("parse reset token: %v", err)
	}
	if claims.UserID != seeded.ID {
		t.Errorf("reset token user = %s, want %s", claims.UserID, seeded.ID)
	}
}

func TestResetPasswordClearsFlagAndIssuesSession(t *testing.T) {
	svc, users := newAuthFixture()
	seeded := seedUser(t, users, "M20000", "temp@example.com", "TempPass123", domain.RoleCustomer, true)

	result, err := svc.ResetPassword(context.Background(), seeded.ID, "BrandNewPass1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected session token after reset")
	}

	login, err := svc.Login(context.Background(), "M20000", "BrandNewPass1")
	if err != nil {
		t.Fatalf("login after reset: %v", err)
	}
	if login.RequireReset {
		t.Error("temporary flag should be cleared")
	}
	if _, err := svc.Login(context.Background(), "M20000", "TempPass123"); err == nil {
		t.Error("old temporary password should no longer work")
	}
}

func TestResetPasswordValidatesLength(t *testing.T) {
	svc, users := newAuthFixture()
	seeded := seedUser(t, users, "M20000", "temp@example.com", "TempPass123", domain.RoleCustomer, true)

	if _, err := svc.ResetPassword(context.Background(), seeded.ID, "short"); !isValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, users := newAuthFixture()
	seeded := seedUser(t, users, "M10256", "elvis@example.com", "password123", domain.RoleCustomer, false)

	if err := svc.ChangePassword(context.Background(), seeded.ID, "wrong", "NewPassword1"); !statusOf(401)(err) {
		t.Errorf("wrong current password: expected 401, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), seeded.ID, "password123", "NewPassword1"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, err := svc.Login(context.Background(), "M10256", "NewPassword1"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}
