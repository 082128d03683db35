package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-retail-backoffice/internal/service"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

// WhatsAppSendRequest represents the send request body
type WhatsAppSendRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	Message  string    `json:"message"`
}

// Send delivers a simulated WhatsApp message to a client
// POST /whatsapp/send
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var req WhatsAppSendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.ClientID == uuid.Nil || req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "client_id and message are required"})
	}

	receipt, err := h.service.SendToClient(req.ClientID, req.Message)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(receipt)
}
