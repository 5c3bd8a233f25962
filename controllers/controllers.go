package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aom0101z1/gestion-ventas-sub001/schedule"
)

// engineError maps engine error types onto HTTP statuses.
func engineError(c *fiber.Ctx, err error) error {
	var invalidDate *schedule.InvalidDateError
	var notFound *schedule.NotFoundError

	switch {
	case errors.As(err, &invalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": invalidDate.Error(),
		})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFound.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
}
