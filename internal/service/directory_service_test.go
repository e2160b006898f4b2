package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/domain"
	"github.com/spec-kit/portal-identity/internal/repository"
)

func newTestDirectoryService(t *testing.T) (*DirectoryService, repository.EmployeeRepository) {
	t.Helper()
	repo := repository.NewMemoryEmployeeRepository()
	return NewDirectoryService(repo, auth.PlainVerifier{}, nil), repo
}

func createInput(email string) CreateEmployeeInput {
	return CreateEmployeeInput{
		Name:      "Hong",
		Email:     email,
		Gender:    domain.GenderMale,
		Position:  "Engineer",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Grade:     domain.GradeTopAdministrator,
		Secret:    "0000",
	}
}

func TestCreateEmployee(t *testing.T) {
	svc, _ := newTestDirectoryService(t)

	employee, err := svc.CreateEmployee(context.Background(), createInput("hong@company.com"))
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if employee.ID == "" {
		t.Error("no id assigned")
	}
	if !employee.FirstLoginPending {
		t.Error("new employee not pending first login")
	}
	if employee.Secret != "0000" {
		t.Errorf("plain scheme should store the secret verbatim, got %q", employee.Secret)
	}
}

func TestCreateEmployee_DefaultGrade(t *testing.T) {
	svc, _ := newTestDirectoryService(t)

	input := createInput("lee@company.com")
	input.Grade = ""
	employee, err := svc.CreateEmployee(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if employee.Grade != domain.GradeGeneralStaff {
		t.Errorf("grade = %q, want default %q", employee.Grade, domain.GradeGeneralStaff)
	}
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	svc, _ := newTestDirectoryService(t)
	ctx := context.Background()

	if _, err := svc.CreateEmployee(ctx, createInput("hong@company.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateEmployee(ctx, createInput("hong@company.com"))
	if domainErrCode(t, err) != "CONFLICT" {
		t.Fatalf("got %v, want CONFLICT", err)
	}
}

func TestUpdateEmployee_EmailConflict(t *testing.T) {
	svc, _ := newTestDirectoryService(t)
	ctx := context.Background()

	first, err := svc.CreateEmployee(ctx, createInput("hong@company.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateEmployee(ctx, createInput("lee@company.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	email := "lee@company.com"
	_, err = svc.UpdateEmployee(ctx, first.ID, UpdateEmployeeInput{Email: &email})
	if domainErrCode(t, err) != "CONFLICT" {
		t.Fatalf("got %v, want CONFLICT", err)
	}

	// updating a record to its own email is not a conflict
	own := "hong@company.com"
	if _, err := svc.UpdateEmployee(ctx, first.ID, UpdateEmployeeInput{Email: &own}); err != nil {
		t.Fatalf("self-email update: %v", err)
	}
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	svc, _ := newTestDirectoryService(t)

	err := svc.DeleteEmployee(context.Background(), "missing")
	if domainErrCode(t, err) != "NOT_FOUND" {
		t.Fatalf("got %v, want NOT_FOUND", err)
	}
}

func TestRecordSurvey_PolicyViolation(t *testing.T) {
	svc, repo := newTestDirectoryService(t)
	ctx := context.Background()

	employee, err := svc.CreateEmployee(ctx, createInput("hong@company.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.RecordSurvey(ctx, employee.ID, domain.SurveyResult{
		FavoriteFoods: nil,
		Interests:     []string{"go"},
	})
	if domainErrCode(t, err) != "POLICY_VIOLATION" {
		t.Fatalf("got %v, want POLICY_VIOLATION", err)
	}

	stored, err := repo.GetByID(ctx, employee.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Survey != nil {
		t.Fatal("rejected survey was stored")
	}
}

func TestRecordSurvey_Overwrite(t *testing.T) {
	svc, _ := newTestDirectoryService(t)
	ctx := context.Background()

	employee, err := svc.CreateEmployee(ctx, createInput("hong@company.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.RecordSurvey(ctx, employee.ID, domain.SurveyResult{
		FavoriteFoods: []string{"kimchi"},
		Interests:     []string{"go"},
	}); err != nil {
		t.Fatalf("first survey: %v", err)
	}

	updated, err := svc.RecordSurvey(ctx, employee.ID, domain.SurveyResult{
		FavoriteFoods: []string{"ramen", "sushi"},
		Interests:     []string{"cycling"},
	})
	if err != nil {
		t.Fatalf("second survey: %v", err)
	}

	if updated.Survey == nil || len(updated.Survey.FavoriteFoods) != 2 || updated.Survey.Interests[0] != "cycling" {
		t.Fatalf("second survey did not replace the first: %+v", updated.Survey)
	}
}
