package dto

import (
	"time"

	"github.com/spec-kit/portal-identity/internal/domain"
)

// CreateEmployeeRequest payload for new directory records.
type CreateEmployeeRequest struct {
	Name      string        `json:"name" validate:"required"`
	Email     string        `json:"email" validate:"required,email"`
	Gender    domain.Gender `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Position  string        `json:"position"`
	Project   string        `json:"project"`
	StartDate time.Time     `json:"startDate" validate:"required"`
	Grade     domain.Grade  `json:"grade" validate:"omitempty,oneof=GENERAL_STAFF LEADER TOP_ADMINISTRATOR"`
	Secret    string        `json:"secret" validate:"required"`
}

// UpdateEmployeeRequest carries a partial update; omitted fields are unchanged.
type UpdateEmployeeRequest struct {
	Name      *string        `json:"name" validate:"omitempty,min=1"`
	Email     *string        `json:"email" validate:"omitempty,email"`
	Gender    *domain.Gender `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Position  *string        `json:"position"`
	Project   *string        `json:"project"`
	StartDate *time.Time     `json:"startDate"`
	EndDate   *time.Time     `json:"endDate"`
	Grade     *domain.Grade  `json:"grade" validate:"omitempty,oneof=GENERAL_STAFF LEADER TOP_ADMINISTRATOR"`
}

// SurveyRequest payload for the questionnaire. Emptiness is a policy concern
// checked by the service, not a malformed-input concern.
type SurveyRequest struct {
	FavoriteFoods []string `json:"favoriteFoods"`
	Interests     []string `json:"interests"`
}

// EmployeeResponse is the full read projection; the stored secret is never included.
type EmployeeResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	Gender            domain.Gender        `json:"gender"`
	Position          string               `json:"position"`
	Project           string               `json:"project"`
	StartDate         time.Time            `json:"startDate"`
	EndDate           *time.Time           `json:"endDate,omitempty"`
	Grade             domain.Grade         `json:"grade"`
	FirstLoginPending bool                 `json:"firstLoginPending"`
	Survey            *domain.SurveyResult `json:"surveyResult,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// NewEmployeeResponse projects a directory record for responses.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		Name:              e.Name,
		Email:             e.Email,
		Gender:            e.Gender,
		Position:          e.Position,
		Project:           e.Project,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		Grade:             e.Grade,
		FirstLoginPending: e.FirstLoginPending,
		Survey:            e.Survey,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// NewEmployeeResponses projects a list.
func NewEmployeeResponses(employees []*domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}
