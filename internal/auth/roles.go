package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portal-identity/internal/domain"
	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

// RequireRole ensures the principal carries one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireSelfOrRole allows the request when the path parameter names the
// caller's own employee id, or when the caller holds one of the roles.
func RequireSelfOrRole(idParam string, allowed ...domain.Role) fiber.Handler {
	roleGate := RequireRole(allowed...)

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Employee != nil && c.Params(idParam) == principal.Employee.ID {
			return c.Next()
		}
		return roleGate(c)
	}
}
