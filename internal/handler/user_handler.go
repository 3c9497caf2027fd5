package handler

import (
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users filtered by search, role and status
// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Search: c.Query("search"),
		Role:   model.Role(c.Query("role")),
		Status: c.Query("status"),
	}

	users, err := h.userService.GetAllUsers(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(users)
}

// Get returns a single user
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// Create adds a new user account
// POST /api/v1/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.CreateUser(&req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(user.ToResponse())
}

// Update edits an existing user account
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.userService.UpdateUser(id, &req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user.ToResponse())
}

// Delete deactivates a user account
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.userService.DeleteUser(id, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deactivated successfully"})
}

// ToggleActive flips a user's active flag
// POST /api/v1/users/:id/toggle-active
func (h *UserHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.userService.ToggleActive(id, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user.ToResponse())
}

// ResetPassword sets a new password for a user, optionally forcing a change
// on next login
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.ResetUserPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.userService.ResetUserPassword(id, &req, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}
