package handlers

import (
	"errors"
	"fmt"

	"swiftstock/internal/models"
	"swiftstock/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationFailed reports struct validation errors field by field.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// invalidBody reports a request body that could not be parsed.
func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// idParam parses the :id route parameter.
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return int64(id), nil
}

// createdOrConflict turns a create Result into a response. Unsuccessful
// results caused by a unique constraint map to 409.
func createdOrConflict(c *fiber.Ctx, result models.Result) error {
	if result.Success {
		return c.Status(fiber.StatusCreated).JSON(result)
	}
	if errors.Is(result.Err, repositories.ErrConstraintViolation) {
		return c.Status(fiber.StatusConflict).JSON(result)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(result)
}

// readFailed reports a failed list or search.
func readFailed(c *fiber.Ctx, what string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not retrieve " + what,
		"error":   err.Error(),
	})
}

// writeOutcome reports the boolean outcome of an update or delete.
func writeOutcome(c *fiber.Ctx, ok bool, success, failure string) error {
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(models.Result{Success: false, Message: failure})
	}
	return c.JSON(models.Result{Success: true, Message: success})
}
