package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/salesapp/internal/models"
	userrepo "github.com/example/salesapp/internal/repository/user"
)

// AdminHandler manages SuperAdmin-only account administration endpoints.
type AdminHandler struct {
	users userrepo.Repository
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(users userrepo.Repository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListAdmins returns all Admin-role accounts.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.users.ListAdmins(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": admins})
}

// Approve marks a pending Admin account as approved.
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	if user.Role != models.RoleAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "only Admin users can be approved")
	}
	if user.IsApproved {
		return fiber.NewError(fiber.StatusBadRequest, "admin is already approved")
	}

	user.IsApproved = true
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "admin approved"})
}

// Block blocks an account. SuperAdmin accounts cannot be blocked.
func (h *AdminHandler) Block(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	if user.Role == models.RoleSuperAdmin {
		return fiber.NewError(fiber.StatusBadRequest, "cannot block SuperAdmin")
	}
	if user.IsBlocked {
		return fiber.NewError(fiber.StatusBadRequest, "user is already blocked")
	}

	user.IsBlocked = true
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "user blocked"})
}

// Unblock lifts a block from an account.
func (h *AdminHandler) Unblock(c *fiber.Ctx) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	if !user.IsBlocked {
		return fiber.NewError(fiber.StatusBadRequest, "user is not blocked")
	}

	user.IsBlocked = false
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "user unblocked"})
}

func (h *AdminHandler) loadUser(c *fiber.Ctx) (*models.User, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	user, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return nil, httpError(err)
	}
	return user, nil
}
