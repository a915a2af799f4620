package service

import (
	"context"
	"errors"
	"testing"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/repository"

	"gorm.io/gorm"
)

func newAuthServiceForTest(t *testing.T, db *gorm.DB, mutate func(cfg *config.Config)) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Session.Secret = "test-session-secret"
	cfg.Session.ExpireHours = 24
	cfg.Company.DefaultDepartment = "株式会社まえかぶ"
	if mutate != nil {
		mutate(cfg)
	}
	return NewAuthService(cfg, repository.NewEmployeeRepository(db), nil)
}

func createEmployee(t *testing.T, db *gorm.DB, svc *AuthService, number, password string) *models.Employee {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	employee := &models.Employee{EmployeeNumber: number, LastName: "佐藤", FirstName: "花子", Role: "staff", PasswordHash: hash}
	mustCreate(t, db, employee)
	return employee
}

func TestLoginIssuesVerifiableSession(t *testing.T) {
	db := setupServiceTest(t)
	svc := newAuthServiceForTest(t, db, nil)
	employee := createEmployee(t, db, svc, "E100", "Secret123")

	got, token, expiresAt, err := svc.Login(context.Background(), "E100", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != employee.ID || token == "" || expiresAt.IsZero() {
		t.Fatalf("unexpected login result")
	}
	if got.LastLoginAt == nil {
		t.Fatalf("last login should be recorded")
	}

	claims, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	user := claims.User()
	if user.EmployeeNumber != "E100" || user.Name != "佐藤 花子" || user.Department != "株式会社まえかぶ" {
		t.Fatalf("unexpected session user %+v", user)
	}
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	db := setupServiceTest(t)
	svc := newAuthServiceForTest(t, db, nil)
	createEmployee(t, db, svc, "E200", "Secret123")

	ctx := context.Background()
	for _, tc := range []struct{ number, password string }{
		{"E200", "wrong"},
		{"E999", "Secret123"},
		{"", "Secret123"},
		{"E200", ""},
		{"E200", "password"},
	} {
		if _, _, _, err := svc.Login(ctx, tc.number, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("login(%q,%q): want ErrInvalidCredentials got %v", tc.number, tc.password, err)
		}
	}
}

func TestFixturePasswordOnlyWhenEnabled(t *testing.T) {
	db := setupServiceTest(t)
	enabled := newAuthServiceForTest(t, db, func(cfg *config.Config) { cfg.Auth.FixturePasswordEnabled = true })
	createEmployee(t, db, enabled, "E300", "Secret123")

	if _, _, _, err := enabled.Login(context.Background(), "E300", "password"); err != nil {
		t.Fatalf("fixture password should pass when enabled: %v", err)
	}
	if _, _, _, err := enabled.Login(context.Background(), "E404", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("fixture password must still require an existing employee, got %v", err)
	}

	release := newAuthServiceForTest(t, db, func(cfg *config.Config) {
		cfg.Auth.FixturePasswordEnabled = true
		cfg.Server.Mode = "release"
	})
	if _, _, _, err := release.Login(context.Background(), "E300", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("fixture password must be refused in release mode, got %v", err)
	}
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	db := setupServiceTest(t)
	svc := newAuthServiceForTest(t, db, nil)
	employee := createEmployee(t, db, svc, "E400", "Secret123")
	ctx := context.Background()

	_, token, _, err := svc.Login(ctx, "E400", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.ChangePassword(ctx, employee.ID, "nope", "Another456"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password should be rejected, got %v", err)
	}
	if err := svc.ChangePassword(ctx, employee.ID, "Secret123", "Another456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("old session should be revoked, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "E400", "Another456"); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}
}

func TestChangePasswordAppliesPolicy(t *testing.T) {
	db := setupServiceTest(t)
	svc := newAuthServiceForTest(t, db, func(cfg *config.Config) {
		cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}
	})
	employee := createEmployee(t, db, svc, "E500", "Secret123")

	err := svc.ChangePassword(context.Background(), employee.ID, "Secret123", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	db := setupServiceTest(t)
	svc := newAuthServiceForTest(t, db, nil)
	employee := createEmployee(t, db, svc, "E600", "Secret123")
	token, _, err := svc.GenerateToken(employee)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	other := newAuthServiceForTest(t, db, func(cfg *config.Config) { cfg.Session.Secret = "another-secret" })
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token signed with another secret must fail, got %v", err)
	}
	if _, err := svc.ParseToken(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token must fail, got %v", err)
	}
	if !IsAuthError(ErrTokenRevoked) || IsAuthError(ErrNotFound) {
		t.Fatalf("IsAuthError classification wrong")
	}

	missing := newAuthServiceForTest(t, db, func(cfg *config.Config) { cfg.Session.Secret = "" })
	if _, _, err := missing.GenerateToken(employee); !errors.Is(err, ErrSessionSecretMissing) {
		t.Fatalf("want ErrSessionSecretMissing got %v", err)
	}
}
