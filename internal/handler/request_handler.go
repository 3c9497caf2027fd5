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

// RequestHandler serves the production requisition workflow.
type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// RejectRequest carries the mandatory rejection reason
type RejectRequest struct {
	Reason string `json:"reason"`
}

// List returns requisitions filtered by search, status and date range
// GET /api/v1/requests
func (h *RequestHandler) List(c *fiber.Ctx) error {
	filter := repository.RequestFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if from, err := time.Parse("2006-01-02", c.Query("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("date_to")); err == nil {
		filter.DateTo = &to
	}

	requests, err := h.requestService.ListRequests(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch requests"})
	}
	return c.JSON(requests)
}

// Get returns a requisition with stock availability info
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	detail, err := h.requestService.GetRequestDetail(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// Create files a new requisition
// POST /api/v1/requests
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var req model.RequestItem
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	stockInfo, err := h.requestService.CreateRequest(&req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"request": req, "stock_info": stockInfo})
}

// Approve approves a pending requisition and releases the stock
// POST /api/v1/requests/:id/approve
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	result, err := h.requestService.Approve(id, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Reject rejects a pending requisition with a reason
// POST /api/v1/requests/:id/reject
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Reason == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Rejection reason is required"})
	}

	request, err := h.requestService.Reject(id, req.Reason, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(request)
}

// StatusCounts returns the requisition status breakdown
// GET /api/v1/requests/status-counts
func (h *RequestHandler) StatusCounts(c *fiber.Ctx) error {
	counts, err := h.requestService.StatusCounts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch status counts"})
	}
	return c.JSON(counts)
}
