package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/portal-identity/internal/domain"
)

// ErrNotFound is returned when a referenced employee does not exist.
var ErrNotFound = errors.New("employee not found")

// EmployeePatch carries a partial update; nil fields are left untouched.
// FirstLoginPending and Survey use pointers for the same reason: absent means
// "do not change", not "clear".
type EmployeePatch struct {
	Name              *string
	Email             *string
	Gender            *domain.Gender
	Position          *string
	Project           *string
	StartDate         *time.Time
	EndDate           *time.Time
	Grade             *domain.Grade
	Secret            *string
	FirstLoginPending *bool
	Survey            *domain.SurveyResult
}

// EmployeeRepository defines access to the authoritative employee directory.
//
// GetByEmail performs an exact, case-sensitive match; callers relying on a
// different comparison policy must normalize before storing and querying.
// Insert appends without deduplicating: uniqueness of id and email is the
// caller's contract (the directory service enforces it).
type EmployeeRepository interface {
	Insert(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, id string, patch EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}

func applyPatch(employee *domain.Employee, patch EmployeePatch, now time.Time) {
	if patch.Name != nil {
		employee.Name = *patch.Name
	}
	if patch.Email != nil {
		employee.Email = *patch.Email
	}
	if patch.Gender != nil {
		employee.Gender = *patch.Gender
	}
	if patch.Position != nil {
		employee.Position = *patch.Position
	}
	if patch.Project != nil {
		employee.Project = *patch.Project
	}
	if patch.StartDate != nil {
		employee.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		end := *patch.EndDate
		employee.EndDate = &end
	}
	if patch.Grade != nil {
		employee.Grade = *patch.Grade
	}
	if patch.Secret != nil {
		employee.Secret = *patch.Secret
	}
	if patch.FirstLoginPending != nil {
		employee.FirstLoginPending = *patch.FirstLoginPending
	}
	if patch.Survey != nil {
		survey := *patch.Survey
		employee.Survey = &survey
	}
	employee.UpdatedAt = now
}
