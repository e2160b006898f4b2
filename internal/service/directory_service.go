package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/domain"
	"github.com/spec-kit/portal-identity/internal/repository"
	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

// CreateEmployeeInput carries the fields for a new directory record.
type CreateEmployeeInput struct {
	Name      string
	Email     string
	Gender    domain.Gender
	Position  string
	Project   string
	StartDate time.Time
	Grade     domain.Grade
	Secret    string
}

// UpdateEmployeeInput is a partial update; nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name      *string
	Email     *string
	Gender    *domain.Gender
	Position  *string
	Project   *string
	StartDate *time.Time
	EndDate   *time.Time
	Grade     *domain.Grade
}

// DirectoryService owns the employee record lifecycle and survey capture.
type DirectoryService struct {
	employees repository.EmployeeRepository
	creds     auth.CredentialVerifier
	logger    *zap.Logger
}

// NewDirectoryService builds the service.
func NewDirectoryService(employees repository.EmployeeRepository, creds auth.CredentialVerifier, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{employees: employees, creds: creds, logger: logger}
}

// CreateEmployee inserts a new record. Email uniqueness is enforced here, on
// top of the store's append-only contract. New employees start with the
// first-login flag set.
func (s *DirectoryService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error) {
	if _, err := s.employees.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	grade := input.Grade
	if grade == "" {
		grade = domain.GradeGeneralStaff
	}

	stored, err := s.creds.Store(input.Secret)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	employee := &domain.Employee{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Email:             input.Email,
		Gender:            input.Gender,
		Position:          input.Position,
		Project:           input.Project,
		StartDate:         input.StartDate,
		Grade:             grade,
		Secret:            stored,
		FirstLoginPending: true,
	}
	if err := s.employees.Insert(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("employee created", zap.String("employee_id", employee.ID), zap.String("grade", string(employee.Grade)))
	return employee, nil
}

// GetEmployee looks up a single record by id.
func (s *DirectoryService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// ListEmployees returns every record in the directory.
func (s *DirectoryService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return employees, nil
}

// UpdateEmployee merges the supplied fields onto the record. A changed email
// must stay unique among live employees.
func (s *DirectoryService) UpdateEmployee(ctx context.Context, id string, input UpdateEmployeeInput) (*domain.Employee, error) {
	if input.Email != nil {
		if existing, err := s.employees.GetByEmail(ctx, *input.Email); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": *input.Email})
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.MapError(err)
		}
	}

	updated, err := s.employees.Update(ctx, id, repository.EmployeePatch{
		Name:      input.Name,
		Email:     input.Email,
		Gender:    input.Gender,
		Position:  input.Position,
		Project:   input.Project,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Grade:     input.Grade,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

// DeleteEmployee removes the record.
func (s *DirectoryService) DeleteEmployee(ctx context.Context, id string) error {
	removed, err := s.employees.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !removed {
		return apperrors.NewNotFound("employee", nil)
	}
	s.logger.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

// RecordSurvey attaches the questionnaire result to the employee. Both lists
// must be non-empty. Repeated calls overwrite the prior result.
func (s *DirectoryService) RecordSurvey(ctx context.Context, id string, result domain.SurveyResult) (*domain.Employee, error) {
	if len(result.FavoriteFoods) == 0 || len(result.Interests) == 0 {
		return nil, apperrors.NewPolicyViolation("favoriteFoods and interests must be non-empty")
	}

	updated, err := s.employees.Update(ctx, id, repository.EmployeePatch{Survey: &result})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}
