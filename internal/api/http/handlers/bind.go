package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/portal-identity/pkg/util"
)

var validate = validator.New()

// bindJSON parses and validates the request body. Any failure maps to a
// VALIDATION_FAILED response with the offending fields listed.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]map[string]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, map[string]string{
					"field": fe.Field(),
					"rule":  fe.Tag(),
				})
			}
			return apperrors.NewValidationError("invalid payload", map[string]any{"fields": fields})
		}
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}
