package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-retail-backoffice/internal/service"
	"go-retail-backoffice/pkg/token"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginRequest is form-encoded, OAuth2 password-flow style.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Register creates a staff user
// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username, email, and password are required"})
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "User created", "data": user.ToResponse()})
}

// Login exchanges form-encoded credentials for a bearer token
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid form body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	resp, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

// Refresh re-issues a token for the subject of a still-valid one
// POST /auth/refresh-token
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	tokenString, err := bearerToken(c)
	if err != nil {
		return writeError(c, err)
	}

	resp, err := h.authService.Refresh(tokenString)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

// bearerToken extracts the raw token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", token.ErrMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", token.ErrInvalidToken
	}
	return parts[1], nil
}
