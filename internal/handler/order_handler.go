package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/internal/service"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// OrderCreateRequest lists product ids in order; duplicates each become a
// separate quantity-1 line.
type OrderCreateRequest struct {
	ClientID uuid.UUID   `json:"client_id"`
	Status   string      `json:"status"`
	Products []uuid.UUID `json:"products"`
}

// OrderUpdateRequest: a nil Products field means "leave the lines alone";
// an empty list wipes them.
type OrderUpdateRequest struct {
	Status   *string     `json:"status"`
	Products []uuid.UUID `json:"products"`
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.ClientID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "client_id is required"})
	}
	if len(req.Products) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "products must not be empty"})
	}

	order, err := h.service.Create(req.ClientID, req.Status, req.Products)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order.ToResponse()})
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Status:  c.Query("status"),
		Section: c.Query("section"),
		Offset:  c.QueryInt("offset", 0),
		Limit:   c.QueryInt("limit", 0),
	}
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid client_id"})
		}
		filter.ClientID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date, expected YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date, expected YYYY-MM-DD"})
		}
		filter.EndDate = &t
	}

	orders, err := h.service.List(filter)
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]model.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = orders[i].ToResponse()
	}
	return c.JSON(responses)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order.ToResponse())
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req OrderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.Update(id, req.Status, req.Products)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order updated", "data": order.ToResponse()})
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
