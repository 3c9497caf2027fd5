package handler

import (
	"time"

	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TransactionHandler serves the incoming and outgoing transaction screens.
type TransactionHandler struct {
	stockService service.StockService
}

func NewTransactionHandler(stockService service.StockService) *TransactionHandler {
	return &TransactionHandler{stockService: stockService}
}

// transactionFilter reads the shared list query parameters. Dates use
// YYYY-MM-DD; a bad date is ignored rather than rejected, matching the
// list screens' forgiving filters.
func transactionFilter(c *fiber.Ctx) repository.TransactionFilter {
	filter := repository.TransactionFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("date_to")); err == nil {
		filter.DateTo = &to
	}
	return filter
}

// ListIncoming returns incoming transactions
// GET /api/v1/incoming
func (h *TransactionHandler) ListIncoming(c *fiber.Ctx) error {
	transactions, err := h.stockService.ListIncoming(transactionFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch incoming transactions"})
	}
	return c.JSON(transactions)
}

// GetIncoming returns one incoming transaction
// GET /api/v1/incoming/:id
func (h *TransactionHandler) GetIncoming(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.stockService.GetIncoming(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

// CreateIncoming records a stock receipt and applies it to the ledger
// POST /api/v1/incoming
func (h *TransactionHandler) CreateIncoming(c *fiber.Ctx) error {
	var req model.IncomingTransaction
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.stockService.CreateIncoming(&req, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

// UpdateIncoming edits a receipt; the ledger moves by the effective delta
// PUT /api/v1/incoming/:id
func (h *TransactionHandler) UpdateIncoming(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req model.IncomingTransaction
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.stockService.UpdateIncoming(id, &req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

// ListOutgoing returns outgoing transactions
// GET /api/v1/outgoing
func (h *TransactionHandler) ListOutgoing(c *fiber.Ctx) error {
	transactions, err := h.stockService.ListOutgoing(transactionFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch outgoing transactions"})
	}
	return c.JSON(transactions)
}

// GetOutgoing returns one outgoing transaction
// GET /api/v1/outgoing/:id
func (h *TransactionHandler) GetOutgoing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.stockService.GetOutgoing(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

// CreateOutgoing records a stock release; fails when stock is insufficient
// POST /api/v1/outgoing
func (h *TransactionHandler) CreateOutgoing(c *fiber.Ctx) error {
	var req model.OutgoingTransaction
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.stockService.CreateOutgoing(&req, middleware.ActorFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

// UpdateOutgoing edits a release; the ledger moves by the effective delta
// PUT /api/v1/outgoing/:id
func (h *TransactionHandler) UpdateOutgoing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var req model.OutgoingTransaction
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.stockService.UpdateOutgoing(id, &req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}
