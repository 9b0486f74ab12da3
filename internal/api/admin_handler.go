package api

import (
	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/domain"
)

// AdminHandler serves staff-only account management
type AdminHandler struct {
	users domain.UserService
}

func NewAdminHandler(users domain.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

type adminUpdateUserRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
	IsStaff  *bool   `json:"is_staff"`
}

// ListUsers
// GET /api/admin/users?page=1&pageSize=20
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, pageSize := pageParams(c, 20)

	users, total, err := h.users.ListUsers(c.UserContext(), page, pageSize)
	if err != nil {
		return handleError(c, err)
	}

	out := make([]AdminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, newAdminUserResponse(&users[i]))
	}
	return SendPaginatedResponse(c, out, page, pageSize, total)
}

// GetUser
// GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "User not found")
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.users.GetUser(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(newAdminUserResponse(user))
}

// UpdateUser
// PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "User not found")
	if err != nil {
		return handleError(c, err)
	}

	var req adminUpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}

	user, err := h.users.AdminUpdateUser(c.UserContext(), id, domain.AdminUserUpdate{
		Name:     req.Name,
		IsActive: req.IsActive,
		IsStaff:  req.IsStaff,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(newAdminUserResponse(user))
}

// DeleteUser removes the account together with its recipes
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "User not found")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.users.DeleteUser(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
