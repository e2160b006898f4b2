package dto

import (
	"time"

	"github.com/spec-kit/portal-identity/internal/domain"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"secret" validate:"required"`
}

// EmployeeSummary is the read-only projection returned alongside a token.
type EmployeeSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Project  string `json:"project"`
}

// LoginResponse reports the authenticated caller's role, grade and token.
// FirstLoginPending is the pre-transition flag so the front end can route the
// user into the password-reset flow.
type LoginResponse struct {
	Role              domain.Role     `json:"role"`
	Grade             domain.Grade    `json:"grade"`
	Token             string          `json:"token"`
	ExpiresAt         time.Time       `json:"expiresAt"`
	FirstLoginPending bool            `json:"firstLoginPending"`
	Employee          EmployeeSummary `json:"employee"`
}

// PasswordChangeRequest payload for the first-login/password-reset workflow.
type PasswordChangeRequest struct {
	EmployeeID      string `json:"employeeId" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// PasswordChangeResponse echoes the identifying fields of the updated record.
type PasswordChangeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewEmployeeSummary projects an employee for auth responses.
func NewEmployeeSummary(e *domain.Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Position: e.Position,
		Project:  e.Project,
	}
}
