package handler

import "github.com/gofiber/fiber/v2"

// Health is the liveness probe
// GET /health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// Root is a welcome payload for browsers poking the API
// GET /
func Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to the retail back-office API"})
}
