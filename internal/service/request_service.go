package service

import (
	"errors"
	"fmt"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrRequestNotPending = errors.New("request is not pending")
)

// RequestStockInfo compares a requisition against the item's current ledger
type RequestStockInfo struct {
	CurrentStock int    `json:"current_stock"`
	Requested    int    `json:"requested"`
	Unit         string `json:"unit"`
	Deficit      int    `json:"deficit"`
	Available    bool   `json:"available"`
}

// RequestDetail is the requisition view with stock availability context
type RequestDetail struct {
	Request   model.RequestItem `json:"request"`
	StockInfo RequestStockInfo  `json:"stock_info"`
}

// ApprovalResult reports the outcome of an approval, including the spawned
// outgoing transaction
type ApprovalResult struct {
	Request  *model.RequestItem         `json:"request"`
	Outgoing *model.OutgoingTransaction `json:"outgoing"`
}

// RequestService drives the production requisition workflow:
// pending -> approved (spawning an outgoing transaction) or pending -> rejected.
type RequestService interface {
	CreateRequest(req *model.RequestItem, actor model.Actor) (*RequestStockInfo, error)
	Approve(id uuid.UUID, actor model.Actor) (*ApprovalResult, error)
	Reject(id uuid.UUID, reason string, actor model.Actor) (*model.RequestItem, error)
	GetRequestDetail(id uuid.UUID) (*RequestDetail, error)
	ListRequests(filter repository.RequestFilter) ([]model.RequestItem, error)
	StatusCounts() (*repository.RequestStatusCounts, error)
}

type requestService struct {
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	stock       StockService
	db          *gorm.DB
}

func NewRequestService(requestRepo repository.RequestRepository, itemRepo repository.ItemRepository, stock StockService, db *gorm.DB) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		stock:       stock,
		db:          db,
	}
}

func stockInfoFor(item *model.Item, requested int) RequestStockInfo {
	deficit := requested - item.CurrentStock
	if deficit < 0 {
		deficit = 0
	}
	return RequestStockInfo{
		CurrentStock: item.CurrentStock,
		Requested:    requested,
		Unit:         item.Unit,
		Deficit:      deficit,
		Available:    item.CurrentStock >= requested,
	}
}

func (s *requestService) CreateRequest(req *model.RequestItem, actor model.Actor) (*RequestStockInfo, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	item, err := s.itemRepo.FindByID(req.ItemID)
	if err != nil {
		return nil, ErrItemNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		number, err := NextTransactionNumber(tx, &model.RequestItem{}, "request_number", model.RequestNumberPrefix, time.Now())
		if err != nil {
			return err
		}
		req.RequestNumber = number
		req.Status = model.RequestPending
		req.RequestedByID = &actor.ID
		req.CreatedBy = actor.AuditID()
		req.UpdatedBy = actor.AuditID()
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}

	// A request may exceed current stock; it simply waits for approval,
	// so availability is informational at this point
	info := stockInfoFor(item, req.Quantity)
	return &info, nil
}

// Approve transitions a pending requisition to approved and spawns the
// linked outgoing transaction. Validation, the requisition update and the
// release (with its ledger decrement) commit or roll back as one unit.
func (s *requestService) Approve(id uuid.UUID, actor model.Actor) (*ApprovalResult, error) {
	var result ApprovalResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.requestRepo.FindPendingForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotPending
			}
			return err
		}

		request.Item = nil // keep the save from touching the association

		now := time.Now()
		request.Status = model.RequestApproved
		request.ApprovedByID = &actor.ID
		request.ApprovedDate = &now
		request.UpdatedBy = actor.AuditID()
		if err := s.requestRepo.Save(tx, request); err != nil {
			return err
		}

		outgoing := &model.OutgoingTransaction{
			RequestItemID:   &request.ID,
			ItemID:          request.ItemID,
			Quantity:        request.Quantity,
			TransactionDate: now,
			Purpose:         fmt.Sprintf("Request %s - %s", request.RequestNumber, request.Purpose),
			Status:          model.OutgoingReleased,
			Notes:           fmt.Sprintf("Created automatically from approval of request %s", request.RequestNumber),
		}

		// The release applies the guarded ledger decrement; insufficient
		// stock aborts here and rolls back the approval stamp above
		if err := s.stock.CreateOutgoingInTx(tx, outgoing, actor); err != nil {
			return err
		}

		result.Request = request
		result.Outgoing = outgoing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *requestService) Reject(id uuid.UUID, reason string, actor model.Actor) (*model.RequestItem, error) {
	var rejected *model.RequestItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.requestRepo.FindPendingForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotPending
			}
			return err
		}

		request.Item = nil

		now := time.Now()
		request.Status = model.RequestRejected
		request.ApprovedByID = &actor.ID
		request.ApprovedDate = &now
		request.RejectionReason = reason
		request.UpdatedBy = actor.AuditID()
		if err := s.requestRepo.Save(tx, request); err != nil {
			return err
		}

		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rejected, nil
}

func (s *requestService) GetRequestDetail(id uuid.UUID) (*RequestDetail, error) {
	request, err := s.requestRepo.FindByID(id)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	detail := &RequestDetail{Request: *request}
	if request.Item != nil {
		detail.StockInfo = stockInfoFor(request.Item, request.Quantity)
	}
	return detail, nil
}

func (s *requestService) ListRequests(filter repository.RequestFilter) ([]model.RequestItem, error) {
	return s.requestRepo.FindAll(filter)
}

func (s *requestService) StatusCounts() (*repository.RequestStatusCounts, error) {
	return s.requestRepo.StatusCounts()
}
