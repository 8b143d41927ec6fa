package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/models"
	customerrepo "github.com/example/salesapp/internal/repository/customer"
	userrepo "github.com/example/salesapp/internal/repository/user"
	"github.com/example/salesapp/internal/services"
)

// CustomerAuthHandler manages passwordless customer signup and OTP login.
type CustomerAuthHandler struct {
	users     userrepo.Repository
	customers customerrepo.Repository
	otp       *services.OtpService
}

// NewCustomerAuthHandler constructs a CustomerAuthHandler.
func NewCustomerAuthHandler(users userrepo.Repository, customers customerrepo.Repository, otp *services.OtpService) *CustomerAuthHandler {
	return &CustomerAuthHandler{users: users, customers: customers, otp: otp}
}

type customerRegisterRequest struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	BillingAddress string `json:"billing_address"`
	ContactNumber  string `json:"contact_number"`
}

// Register creates a Customer account with no password; the customer logs in
// with one-time email codes. The user and profile rows are created together.
func (h *CustomerAuthHandler) Register(c *fiber.Ctx) error {
	var req customerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.FullName == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "full_name and email are required")
	}

	if _, err := h.users.GetByEmail(c.Context(), req.Email); err == nil {
		return fiber.NewError(fiber.StatusConflict, "email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	customer := models.Customer{
		User: &models.User{
			Username:     req.Email,
			Email:        req.Email,
			PasswordHash: nil,
			Role:         models.RoleCustomer,
			IsApproved:   true,
			IsBlocked:    false,
		},
		FullName:       req.FullName,
		Email:          req.Email,
		BillingAddress: req.BillingAddress,
		ContactNumber:  req.ContactNumber,
	}
	if err := h.customers.Create(c.Context(), &customer); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":        customer.ID,
			"full_name": customer.FullName,
			"email":     customer.Email,
		},
	})
}

type requestOtpRequest struct {
	Email string `json:"email"`
}

// RequestOtp issues a one-time login code for a customer email.
func (h *CustomerAuthHandler) RequestOtp(c *fiber.Ctx) error {
	var req requestOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	if err := h.otp.RequestCode(c.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer email not found")
		}
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP has been sent to your email",
	})
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyOtp trades a valid code for a session token.
func (h *CustomerAuthHandler) VerifyOtp(c *fiber.Ctx) error {
	var req verifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and code are required")
	}

	token, err := h.otp.VerifyCode(c.Context(), req.Email, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
