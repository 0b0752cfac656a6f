package handler

import (
	"errors"
	"log"

	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/driveboxhq/drivebox/internal/telemetry"
	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to HTTP responses. Upstream failure
// details are logged with the request trace id and never echoed to the
// client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "file not found",
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "you don't have access to this file",
		})
	default:
		traceID := telemetry.SpanFromContext(c).SpanContext().TraceID().String()
		log.Printf("Error: %v (trace_id=%s)", err, traceID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error, please try again later",
		})
	}
}
