package handler

import (
	"errors"

	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// respondError maps service sentinel errors to HTTP status codes. Anything
// unknown is treated as a client error so the message still reaches the UI.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrSelfModification):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})

	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}
