package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/config"
	"github.com/spec-kit/portal-identity/internal/domain"
	"github.com/spec-kit/portal-identity/internal/repository"
	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

func newTestAuthService(t *testing.T) (*AuthService, repository.EmployeeRepository) {
	t.Helper()
	repo := repository.NewMemoryEmployeeRepository()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:        "test-secret",
		SessionTTLHours:  24,
		MinSecretLength:  4,
		CredentialScheme: config.CredentialSchemePlain,
	}, AuthDependencies{
		Employees: repo,
		Creds:     auth.PlainVerifier{},
	})
	return svc, repo
}

func seedAdmin(t *testing.T, repo repository.EmployeeRepository) *domain.Employee {
	t.Helper()
	employee := &domain.Employee{
		ID:                "emp-1",
		Name:              "Hong",
		Email:             "hong@company.com",
		Gender:            domain.GenderMale,
		StartDate:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Grade:             domain.GradeTopAdministrator,
		Secret:            "0000",
		FirstLoginPending: true,
	}
	if err := repo.Insert(context.Background(), employee); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return employee
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	return apperrors.ToDomainError(err).Code
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedAdmin(t, repo)

	result, err := svc.Login(context.Background(), "hong@company.com", "0000")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", result.Role, domain.RoleAdmin)
	}
	if !result.FirstLoginPending {
		t.Error("FirstLoginPending = false before any password change")
	}
	if result.Token == "" {
		t.Error("empty token")
	}
	if !result.ExpiresAt.After(time.Now().Add(23 * time.Hour)) {
		t.Errorf("expiry %v not about 24h out", result.ExpiresAt)
	}

	claims, err := svc.TokenManager().Parse(result.Token)
	if err != nil {
		t.Fatalf("Parse issued token: %v", err)
	}
	if claims.Subject != "emp-1" || claims.Role != domain.RoleAdmin || claims.Grade != domain.GradeTopAdministrator {
		t.Errorf("unexpected claims %+v", claims)
	}
}

// Unknown identity and bad credential must be indistinguishable externally.
func TestLogin_GenericFailure(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedAdmin(t, repo)

	_, unknownErr := svc.Login(context.Background(), "nobody@company.com", "0000")
	_, badSecretErr := svc.Login(context.Background(), "hong@company.com", "wrong")

	for _, err := range []error{unknownErr, badSecretErr} {
		de := apperrors.ToDomainError(err)
		if de == nil || de.Code != "AUTH_FAILED" {
			t.Fatalf("expected AUTH_FAILED, got %v", err)
		}
		if de.Message != apperrors.GenericAuthMessage {
			t.Fatalf("message %q leaks the failure reason", de.Message)
		}
	}
	if unknownErr.Error() != badSecretErr.Error() {
		t.Fatalf("failure messages differ: %q vs %q", unknownErr, badSecretErr)
	}
}

func TestChangePassword_FirstLoginTransition(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedAdmin(t, repo)
	ctx := context.Background()

	updated, err := svc.ChangePassword(ctx, "emp-1", "0000", "newpass")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if updated.FirstLoginPending {
		t.Error("FirstLoginPending still true after password change")
	}

	// the old secret no longer verifies
	if _, err := svc.Login(ctx, "hong@company.com", "0000"); domainErrCode(t, err) != "AUTH_FAILED" {
		t.Fatal("old secret still accepted")
	}

	// the new one does, and reports the post-transition flag
	result, err := svc.Login(ctx, "hong@company.com", "newpass")
	if err != nil {
		t.Fatalf("Login with new secret: %v", err)
	}
	if result.FirstLoginPending {
		t.Error("FirstLoginPending = true after the transition")
	}
}

func TestChangePassword_BadCredential(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedAdmin(t, repo)

	_, err := svc.ChangePassword(context.Background(), "emp-1", "wrong", "newpass")
	if domainErrCode(t, err) != "AUTH_FAILED" {
		t.Fatalf("got %v, want AUTH_FAILED", err)
	}

	// no transition happened
	stored, err := repo.GetByID(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.FirstLoginPending || stored.Secret != "0000" {
		t.Fatal("failed change mutated the record")
	}
}

func TestChangePassword_PolicyViolation(t *testing.T) {
	svc, repo := newTestAuthService(t)
	seedAdmin(t, repo)

	_, err := svc.ChangePassword(context.Background(), "emp-1", "0000", "abc")
	if domainErrCode(t, err) != "POLICY_VIOLATION" {
		t.Fatalf("got %v, want POLICY_VIOLATION", err)
	}

	stored, err := repo.GetByID(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Secret != "0000" || !stored.FirstLoginPending {
		t.Fatal("rejected change mutated the record")
	}
}

func TestChangePassword_UnknownEmployee(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ChangePassword(context.Background(), "missing", "0000", "newpass")
	if domainErrCode(t, err) != "NOT_FOUND" {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}
