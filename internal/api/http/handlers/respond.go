package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portal-identity/internal/api/dto"
)

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}
