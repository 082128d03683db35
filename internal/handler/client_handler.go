package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/internal/service"
)

type ClientHandler struct {
	service service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{service: s}
}

// ClientUpdateRequest carries the partial update; absent fields stay nil.
type ClientUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	CPF   *string `json:"cpf"`
}

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var client model.Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&client); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Client created", "data": client})
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	filter := repository.ClientFilter{
		Name:   c.Query("name"),
		Email:  c.Query("email"),
		Offset: c.QueryInt("offset", 0),
		Limit:  c.QueryInt("limit", 0),
	}

	clients, err := h.service.List(filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(clients)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	client, err := h.service.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(client)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	var req ClientUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	client, err := h.service.Update(id, service.ClientUpdate{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Client updated", "data": client})
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}
