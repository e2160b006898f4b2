package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/config"
	"github.com/spec-kit/portal-identity/internal/domain"
	"github.com/spec-kit/portal-identity/internal/repository"
	"github.com/spec-kit/portal-identity/internal/session"
	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

// LoginResult bundles everything the boundary reports on a successful login.
// FirstLoginPending is the pre-transition flag so the caller can route the
// user into the password-reset flow.
type LoginResult struct {
	Employee          *domain.Employee
	Role              domain.Role
	Token             string
	ExpiresAt         time.Time
	FirstLoginPending bool
}

// AuthService coordinates login, logout and the first-login password change.
type AuthService struct {
	employees       repository.EmployeeRepository
	creds           auth.CredentialVerifier
	tokens          *auth.TokenManager
	sessions        *session.Store
	minSecretLength int
	logger          *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Employees repository.EmployeeRepository
	Creds     auth.CredentialVerifier
	Sessions  *session.Store
	Logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		employees:       deps.Employees,
		creds:           deps.Creds,
		tokens:          auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		sessions:        deps.Sessions,
		minSecretLength: cfg.MinSecretLength,
		logger:          logger,
	}
}

// Login verifies the credential pair and mints a session token. Both failure
// paths return the identical generic error; the distinguishing reason is only
// logged.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*LoginResult, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("login rejected", zap.String("reason", "unknown-identity"), zap.String("email", email))
			return nil, apperrors.NewAuthFailed()
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.creds.Verify(employee.Secret, secret); err != nil {
		s.logger.Info("login rejected", zap.String("reason", "bad-credential"), zap.String("employee_id", employee.ID))
		return nil, apperrors.NewAuthFailed()
	}

	role := domain.DeriveRole(employee.Grade)

	token, claims, err := s.tokens.Issue(employee, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.sessions.Save(ctx, claims.SessionID(), employee.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	return &LoginResult{
		Employee:          employee,
		Role:              role,
		Token:             token,
		ExpiresAt:         claims.ExpiresAt.Time,
		FirstLoginPending: employee.FirstLoginPending,
	}, nil
}

// Logout revokes the server-side session record when the store is enabled.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ChangePassword drives the PendingFirstLogin -> Active transition. The
// current secret must verify and the new one must meet the length policy;
// nothing is mutated on any failure.
func (s *AuthService) ChangePassword(ctx context.Context, employeeID, currentSecret, newSecret string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.creds.Verify(employee.Secret, currentSecret); err != nil {
		s.logger.Info("password change rejected", zap.String("reason", "bad-credential"), zap.String("employee_id", employeeID))
		return nil, apperrors.NewAuthFailed()
	}

	if len(newSecret) < s.minSecretLength {
		return nil, apperrors.NewPolicyViolation("new password too short")
	}

	stored, err := s.creds.Store(newSecret)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	pending := false
	updated, err := s.employees.Update(ctx, employeeID, repository.EmployeePatch{
		Secret:            &stored,
		FirstLoginPending: &pending,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("password changed", zap.String("employee_id", employeeID))
	return updated, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
