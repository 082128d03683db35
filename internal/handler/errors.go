package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/pkg/logger"
	"go-retail-backoffice/pkg/token"
)

// writeError maps domain errors to HTTP statuses in one place. Anything
// unclassified is logged with request context and reported as a generic
// internal failure, never leaking internals to the caller.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrUsernameTaken): // register contract: 400, not 409
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrMissingToken):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrClientNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrCPFTaken),
		errors.Is(err, model.ErrBarcodeTaken),
		errors.Is(err, model.ErrOutOfStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	log := logger.Get()
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
