package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/internal/service"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// ProductCreateRequest maps initial_stock onto the stored stock count.
type ProductCreateRequest struct {
	Description    string     `json:"description"`
	SalePrice      float64    `json:"sale_price"`
	Barcode        string     `json:"barcode"`
	Section        string     `json:"section"`
	InitialStock   int        `json:"initial_stock"`
	ExpirationDate *time.Time `json:"expiration_date"`
	ImageURL       *string    `json:"image_url"`
}

// ProductUpdateRequest carries the partial update; absent fields stay nil.
type ProductUpdateRequest struct {
	Description    *string    `json:"description"`
	SalePrice      *float64   `json:"sale_price"`
	Barcode        *string    `json:"barcode"`
	Section        *string    `json:"section"`
	Stock          *int       `json:"stock"`
	ExpirationDate *time.Time `json:"expiration_date"`
	ImageURL       *string    `json:"image_url"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product := model.Product{
		Description:    req.Description,
		SalePrice:      req.SalePrice,
		Barcode:        req.Barcode,
		Section:        req.Section,
		Stock:          req.InitialStock,
		ExpirationDate: req.ExpirationDate,
		ImageURL:       req.ImageURL,
	}

	if err := h.service.Create(&product); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Section:   c.Query("section"),
		Available: c.QueryBool("available", false),
		Offset:    c.QueryInt("offset", 0),
		Limit:     c.QueryInt("limit", 0),
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid min_price"})
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid max_price"})
		}
		filter.MaxPrice = &v
	}

	products, err := h.service.List(filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Update(id, service.ProductUpdate{
		Description:    req.Description,
		SalePrice:      req.SalePrice,
		Barcode:        req.Barcode,
		Section:        req.Section,
		Stock:          req.Stock,
		ExpirationDate: req.ExpirationDate,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
