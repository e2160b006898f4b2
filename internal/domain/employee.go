package domain

import "time"

// Gender enumerates the recorded gender values.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Grade is the authoritative authorization tier of an employee.
type Grade string

const (
	GradeGeneralStaff     Grade = "GENERAL_STAFF"
	GradeLeader           Grade = "LEADER"
	GradeTopAdministrator Grade = "TOP_ADMINISTRATOR"
)

// SurveyResult is the one-time questionnaire attached to an employee.
// Both lists are non-empty whenever the result is present.
type SurveyResult struct {
	FavoriteFoods []string `json:"favoriteFoods"`
	Interests     []string `json:"interests"`
}

// Employee is the directory's authoritative record. Secret holds the stored
// credential in the representation of the active credential scheme.
type Employee struct {
	ID                string
	Name              string
	Email             string
	Gender            Gender
	Position          string
	Project           string
	StartDate         time.Time
	EndDate           *time.Time
	Grade             Grade
	Secret            string
	FirstLoginPending bool
	Survey            *SurveyResult
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	cp := *e
	if e.EndDate != nil {
		end := *e.EndDate
		cp.EndDate = &end
	}
	if e.Survey != nil {
		cp.Survey = &SurveyResult{
			FavoriteFoods: append([]string(nil), e.Survey.FavoriteFoods...),
			Interests:     append([]string(nil), e.Survey.Interests...),
		}
	}
	return &cp
}
