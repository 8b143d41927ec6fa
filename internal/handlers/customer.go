package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/salesapp/internal/middleware"
	customerrepo "github.com/example/salesapp/internal/repository/customer"
	"github.com/example/salesapp/internal/utils"
)

// CustomerHandler manages customer profile endpoints.
type CustomerHandler struct {
	customers customerrepo.Repository
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customers customerrepo.Repository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Me returns the authenticated customer's profile.
func (h *CustomerHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	customer, err := h.customers.GetByUserID(c.Context(), userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": customer})
}

type updateCustomerRequest struct {
	FullName       *string `json:"full_name"`
	BillingAddress *string `json:"billing_address"`
	ContactNumber  *string `json:"contact_number"`
}

// UpdateMe updates the authenticated customer's own profile fields.
func (h *CustomerHandler) UpdateMe(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	customer, err := h.customers.GetByUserID(c.Context(), userID)
	if err != nil {
		return httpError(err)
	}

	changed := false
	if req.FullName != nil && *req.FullName != "" {
		customer.FullName = *req.FullName
		changed = true
	}
	if req.BillingAddress != nil {
		customer.BillingAddress = *req.BillingAddress
		changed = true
	}
	if req.ContactNumber != nil {
		customer.ContactNumber = *req.ContactNumber
		changed = true
	}
	if !changed {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	customer.UpdatedAt = time.Now()

	if err := h.customers.Update(c.Context(), customer); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": customer})
}

// List returns all customer profiles; administrative use only.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	customers, total, err := h.customers.List(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customers,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// Delete removes a customer profile; administrative use only.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if _, err := h.customers.GetByID(c.Context(), id); err != nil {
		return httpError(err)
	}

	if err := h.customers.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "customer deleted"})
}
