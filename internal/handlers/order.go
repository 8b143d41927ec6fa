package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/middleware"
	customerrepo "github.com/example/salesapp/internal/repository/customer"
	"github.com/example/salesapp/internal/services"
	"github.com/example/salesapp/internal/utils"
)

// OrderHandler manages order and payment endpoints.
type OrderHandler struct {
	orders    *services.OrderService
	customers customerrepo.Repository
	gateway   services.PaymentGateway
	cfg       *config.Config
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orders *services.OrderService, customers customerrepo.Repository, gateway services.PaymentGateway, cfg *config.Config) *OrderHandler {
	return &OrderHandler{orders: orders, customers: customers, gateway: gateway, cfg: cfg}
}

func requester(c *fiber.Ctx) (services.Requester, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return services.Requester{}, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	role, _ := middleware.GetCurrentUserRole(c)
	return services.Requester{UserID: userID, Role: role}, nil
}

type createOrderRequest struct {
	Items []services.CartLine `json:"items"`
}

// Create places a new order from the submitted cart lines.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	var body createOrderRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.CreateOrder(c.Context(), req.UserID, body.Items)
	if err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListMine returns the authenticated customer's orders.
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListMyOrders(c.Context(), req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// Get returns one order to its owner or to an administrative caller.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.GetOrder(c.Context(), orderID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ListAll returns a page of all orders; administrative use only.
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	orders, total, err := h.orders.ListAllOrders(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type createPaymentRequest struct {
	Method string `json:"method"`
}

// CreatePayment registers a payment attempt for the order with the
// configured gateway and returns the reference and checkout URL.
func (h *OrderHandler) CreatePayment(c *fiber.Ctx) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var body createPaymentRequest
	_ = c.BodyParser(&body)
	if body.Method == "" {
		body.Method = "card"
	}

	order, err := h.orders.GetOrder(c.Context(), orderID, req)
	if err != nil {
		return httpError(err)
	}

	customer, err := h.customers.GetByID(c.Context(), order.CustomerID)
	if err != nil {
		return httpError(err)
	}

	payment, err := h.gateway.CreatePayment(c.Context(), services.PaymentRequest{
		Amount:      order.TotalAmount,
		Currency:    h.cfg.Currency,
		Description: fmt.Sprintf("Order #%s", order.ID),
		Method:      body.Method,
		Payer: services.PayerDetails{
			Name:  customer.FullName,
			Email: customer.Email,
			Phone: customer.ContactNumber,
		},
		Metadata: map[string]string{
			"order_id":    order.ID.String(),
			"customer_id": customer.ID.String(),
		},
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"payment_reference": payment.Reference,
			"status":            payment.Status,
			"checkout_url":      payment.CheckoutURL,
			"amount":            payment.Amount,
		},
	})
}

type updatePaymentStatusRequest struct {
	PaymentReference string `json:"payment_reference"`
}

// UpdatePaymentStatus re-verifies the payment with the gateway and feeds the
// outcome into the order state machine. Safe to re-submit with the same
// reference.
func (h *OrderHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var body updatePaymentStatusRequest
	if err := c.BodyParser(&body); err != nil || body.PaymentReference == "" {
		return fiber.NewError(fiber.StatusBadRequest, "payment_reference is required")
	}

	// Ownership check before touching the gateway.
	if _, err := h.orders.GetOrder(c.Context(), orderID, req); err != nil {
		return httpError(err)
	}

	paid, err := h.gateway.VerifyPayment(c.Context(), body.PaymentReference)
	if err != nil {
		return httpError(err)
	}

	order, err := h.orders.ApplyPaymentResult(c.Context(), orderID, body.PaymentReference, paid)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// Cancel cancels an unpaid order.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	req, err := requester(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.orders.Cancel(c.Context(), orderID, req); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "order cancelled"})
}
