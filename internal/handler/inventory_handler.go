package handler

import (
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InventoryHandler serves the master data screens: categories, suppliers
// and items.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListCategories returns all categories
// GET /api/v1/categories
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.inventoryService.GetAllCategories(c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

// CreateCategory adds a category
// POST /api/v1/categories
func (h *InventoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.inventoryService.CreateCategory(&req, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

// UpdateCategory edits a category
// PUT /api/v1/categories/:id
func (h *InventoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.inventoryService.UpdateCategory(id, &req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory removes a category
// DELETE /api/v1/categories/:id
func (h *InventoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.inventoryService.DeleteCategory(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// ListSuppliers returns suppliers filtered by search
// GET /api/v1/suppliers
func (h *InventoryHandler) ListSuppliers(c *fiber.Ctx) error {
	filter := repository.SupplierFilter{Search: c.Query("search")}
	suppliers, err := h.inventoryService.GetAllSuppliers(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch suppliers"})
	}
	return c.JSON(suppliers)
}

// GetSupplier returns a supplier with its recent receipts and totals
// GET /api/v1/suppliers/:id
func (h *InventoryHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	detail, err := h.inventoryService.GetSupplierDetail(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// CreateSupplier adds a supplier, generating its code
// POST /api/v1/suppliers
func (h *InventoryHandler) CreateSupplier(c *fiber.Ctx) error {
	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.inventoryService.CreateSupplier(&req, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

// UpdateSupplier edits a supplier
// PUT /api/v1/suppliers/:id
func (h *InventoryHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier, err := h.inventoryService.UpdateSupplier(id, &req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

// DeleteSupplier removes a supplier
// DELETE /api/v1/suppliers/:id
func (h *InventoryHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.inventoryService.DeleteSupplier(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted successfully"})
}

// ListItems returns items filtered by search, category and stock status
// GET /api/v1/items
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Search:      c.Query("search"),
		StockStatus: model.StockStatus(c.Query("stock_status")),
		ActiveOnly:  c.Query("active_only") == "true",
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category_id"})
		}
		filter.CategoryID = &categoryID
	}

	items, err := h.inventoryService.GetAllItems(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch items"})
	}
	return c.JSON(items)
}

// GetItem returns an item with its recent transaction history
// GET /api/v1/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	detail, err := h.inventoryService.GetItemDetail(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// CreateItem adds an item to the master
// POST /api/v1/items
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req model.Item
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.inventoryService.CreateItem(&req, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

// UpdateItem edits an item. CurrentStock is never writable here.
// PUT /api/v1/items/:id
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req model.Item
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.inventoryService.UpdateItem(id, &req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem removes an item
// DELETE /api/v1/items/:id
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	if err := h.inventoryService.DeleteItem(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}
