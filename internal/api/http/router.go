package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portal-identity/internal/api/http/handlers"
	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/change", cfg.Auth.ChangePassword)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	employees := app.Group("/employees", cfg.AuthMiddleware.Handle)
	employees.Post("", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Create)
	employees.Get("", auth.RequireRole(domain.RoleAdmin), cfg.Employees.List)
	employees.Get("/:id", auth.RequireSelfOrRole("id", domain.RoleAdmin), cfg.Employees.Get)
	employees.Patch("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Update)
	employees.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Employees.Delete)
	employees.Post("/:id/survey", auth.RequireSelfOrRole("id", domain.RoleAdmin), cfg.Employees.SubmitSurvey)
}
