package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/models"
	productrepo "github.com/example/salesapp/internal/repository/product"
)

// ProductHandler manages catalog endpoints. Reads are public; writes are
// restricted to administrative roles by the route wiring.
type ProductHandler struct {
	products productrepo.Repository
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(products productrepo.Repository) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns the full catalog.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// Get returns one product by id.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Create adds a product to the catalog.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Price.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.products.Create(c.Context(), &product); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// Update replaces a product's name, description and price. Existing orders
// keep their snapshots and are unaffected.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Price.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
	}

	product, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		return httpError(err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	if err := h.products.Update(c.Context(), product); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// Delete removes a product from the catalog.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if _, err := h.products.GetByID(c.Context(), id); err != nil {
		return httpError(err)
	}

	if err := h.products.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "product deleted"})
}
