package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/models"
	userrepo "github.com/example/salesapp/internal/repository/user"
	"github.com/example/salesapp/internal/utils"
)

// AuthHandler bundles dependencies for password authentication endpoints.
type AuthHandler struct {
	users userrepo.Repository
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users userrepo.Repository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a new password-authenticated account. Customers are
// approved immediately; Admin accounts wait for SuperAdmin approval.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleCustomer {
		return fiber.NewError(fiber.StatusBadRequest, "role must be Admin or Customer")
	}

	if _, err := h.users.GetByUsername(c.Context(), req.Username); err == nil {
		return fiber.NewError(fiber.StatusConflict, "username already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := h.users.GetByEmail(c.Context(), req.Email); err == nil {
		return fiber.NewError(fiber.StatusConflict, "email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         req.Role,
		IsApproved:   req.Role == models.RoleCustomer,
		IsBlocked:    false,
	}
	if err := h.users.Create(c.Context(), &user); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"role":        user.Role,
			"is_approved": user.IsApproved,
		},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an existing account with username and password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.GetByUsername(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
		}
		return err
	}

	if user.PasswordHash == nil || !utils.CheckPassword(*user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}

	if user.IsBlocked {
		return fiber.NewError(fiber.StatusUnauthorized, "your account has been blocked")
	}
	if user.Role == models.RoleAdmin && !user.IsApproved {
		return fiber.NewError(fiber.StatusUnauthorized, "your Admin account is pending approval")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// Logout acknowledges a logout; tokens are stateless and discarded client-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out, delete the token on the client side",
	})
}
