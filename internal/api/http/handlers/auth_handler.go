package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portal-identity/internal/api/dto"
	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/service"
	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

// AuthHandler exposes login, logout and password-change endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Secret)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "login successful", dto.LoginResponse{
		Role:              result.Role,
		Grade:             result.Employee.Grade,
		Token:             result.Token,
		ExpiresAt:         result.ExpiresAt,
		FirstLoginPending: result.FirstLoginPending,
		Employee:          dto.NewEmployeeSummary(result.Employee),
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.auth.Logout(c.Context(), principal.SessionID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "logged out", nil)
}

// ChangePassword handles POST /auth/password/change. The operation is
// authenticated by the current password rather than a bearer token: it is the
// route out of the first-login state.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	employee, err := h.auth.ChangePassword(c.Context(), req.EmployeeID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "password changed", dto.PasswordChangeResponse{
		ID:    employee.ID,
		Name:  employee.Name,
		Email: employee.Email,
	})
}
