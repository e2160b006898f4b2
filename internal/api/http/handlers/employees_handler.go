package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portal-identity/internal/api/dto"
	"github.com/spec-kit/portal-identity/internal/domain"
	"github.com/spec-kit/portal-identity/internal/service"
)

// EmployeesHandler exposes the administrative directory lifecycle and survey capture.
type EmployeesHandler struct {
	directory *service.DirectoryService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(directory *service.DirectoryService) *EmployeesHandler {
	return &EmployeesHandler{directory: directory}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	employee, err := h.directory.CreateEmployee(c.Context(), service.CreateEmployeeInput{
		Name:      req.Name,
		Email:     req.Email,
		Gender:    req.Gender,
		Position:  req.Position,
		Project:   req.Project,
		StartDate: req.StartDate,
		Grade:     req.Grade,
		Secret:    req.Secret,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "employee created", dto.NewEmployeeResponse(employee))
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.directory.ListEmployees(c.Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "employees", dto.NewEmployeeResponses(employees))
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.directory.GetEmployee(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "employee", dto.NewEmployeeResponse(employee))
}

// Update handles PATCH /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	employee, err := h.directory.UpdateEmployee(c.Context(), c.Params("id"), service.UpdateEmployeeInput{
		Name:      req.Name,
		Email:     req.Email,
		Gender:    req.Gender,
		Position:  req.Position,
		Project:   req.Project,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Grade:     req.Grade,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "employee updated", dto.NewEmployeeResponse(employee))
}

// Delete handles DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.DeleteEmployee(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "employee deleted", nil)
}

// SubmitSurvey handles POST /employees/:id/survey.
func (h *EmployeesHandler) SubmitSurvey(c *fiber.Ctx) error {
	var req dto.SurveyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	employee, err := h.directory.RecordSurvey(c.Context(), c.Params("id"), domain.SurveyResult{
		FavoriteFoods: req.FavoriteFoods,
		Interests:     req.Interests,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "survey recorded", employee.Survey)
}
