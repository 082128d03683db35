package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/pkg/token"
)

// RequireAuth validates the bearer token and sets user info in the request
// context. Signature and expiry checks are stateless; the subject is then
// re-checked against the credential store so tokens for deleted users stop
// working immediately.
func RequireAuth(issuer token.Issuer, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		username, err := issuer.Verify(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByUsername(username)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("username", user.Username)
		c.Locals("is_admin", user.IsAdmin)

		return c.Next()
	}
}

// RequireAdmin gates destructive routes behind the admin flag set by
// RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok || !isAdmin {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin privileges"})
		}
		return c.Next()
	}
}
