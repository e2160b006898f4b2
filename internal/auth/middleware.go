package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portal-identity/internal/domain"
	"github.com/spec-kit/portal-identity/internal/repository"
	"github.com/spec-kit/portal-identity/internal/session"
	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Role and Grade come from the
// token claims and are trusted for the token lifetime; the directory lookup
// only confirms the subject still exists.
type Principal struct {
	Employee  *domain.Employee
	Role      domain.Role
	Grade     domain.Grade
	SessionID string
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	employees repository.EmployeeRepository
	sessions  *session.Store
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, employees repository.EmployeeRepository, sessions *session.Store) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, employees: employees, sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewTokenExpired()
		}
		return apperrors.NewTokenInvalid()
	}

	if ok, err := m.sessions.Exists(c.Context(), claims.SessionID()); err != nil {
		return apperrors.MapError(err)
	} else if !ok {
		return apperrors.NewTokenInvalid()
	}

	employee, err := m.employees.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewTokenInvalid()
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{
		Employee:  employee,
		Role:      claims.Role,
		Grade:     claims.Grade,
		SessionID: claims.SessionID(),
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
