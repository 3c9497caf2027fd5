package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrItemChanged         = errors.New("item cannot be changed on an existing transaction")

	// ErrInsufficientStock surfaces the ledger guard to handlers
	ErrInsufficientStock = repository.ErrInsufficientStock
)

// StockService owns every mutation of the item ledger. Incoming and outgoing
// transactions are the only write paths; each save computes the ledger delta
// from the previously persisted state and applies it in the same database
// transaction as the log write.
type StockService interface {
	CreateIncoming(req *model.IncomingTransaction, actor model.Actor) error
	UpdateIncoming(id uuid.UUID, req *model.IncomingTransaction, actor model.Actor) (*model.IncomingTransaction, error)
	GetIncoming(id uuid.UUID) (*model.IncomingTransaction, error)
	ListIncoming(filter repository.TransactionFilter) ([]model.IncomingTransaction, error)

	CreateOutgoing(req *model.OutgoingTransaction, actor model.Actor) error
	// CreateOutgoingInTx runs the release inside an existing transaction so
	// callers (requisition approval) can make it part of a larger atomic unit
	CreateOutgoingInTx(tx *gorm.DB, req *model.OutgoingTransaction, actor model.Actor) error
	UpdateOutgoing(id uuid.UUID, req *model.OutgoingTransaction, actor model.Actor) (*model.OutgoingTransaction, error)
	GetOutgoing(id uuid.UUID) (*model.OutgoingTransaction, error)
	ListOutgoing(filter repository.TransactionFilter) ([]model.OutgoingTransaction, error)
}

type stockService struct {
	itemRepo     repository.ItemRepository
	incomingRepo repository.IncomingRepository
	outgoingRepo repository.OutgoingRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewStockService(itemRepo repository.ItemRepository, inRepo repository.IncomingRepository, outRepo repository.OutgoingRepository, db *gorm.DB, hub *ws.Hub) StockService {
	return &stockService{
		itemRepo:     itemRepo,
		incomingRepo: inRepo,
		outgoingRepo: outRepo,
		db:           db,
		wsHub:        hub,
	}
}

// incomingDelta is the ledger change a saved receipt implies: the quantity
// counts only while status is "received", so the delta is the difference of
// effective quantities between the persisted state and the new state.
func incomingDelta(old, updated *model.IncomingTransaction) int {
	oldEffective := 0
	if old != nil {
		oldEffective = old.EffectiveQuantity()
	}
	return updated.EffectiveQuantity() - oldEffective
}

// outgoingDelta mirrors incomingDelta with the sign inverted for "released"
func outgoingDelta(old, updated *model.OutgoingTransaction) int {
	oldEffective := 0
	if old != nil {
		oldEffective = old.EffectiveQuantity()
	}
	return oldEffective - updated.EffectiveQuantity()
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *stockService) CreateIncoming(req *model.IncomingTransaction, actor model.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.First(&item, "id = ?", req.ItemID).Error; err != nil {
			return ErrItemNotFound
		}
		if req.SupplierID != nil {
			var supplier model.Supplier
			if err := tx.First(&supplier, "id = ?", *req.SupplierID).Error; err != nil {
				return ErrSupplierNotFound
			}
		}

		number, err := NextTransactionNumber(tx, &model.IncomingTransaction{}, "transaction_number", model.IncomingTransactionNumberPrefix, time.Now())
		if err != nil {
			return err
		}
		req.TransactionNumber = number
		req.ReceivedByID = &actor.ID
		req.CreatedBy = actor.AuditID()
		req.UpdatedBy = actor.AuditID()

		if err := s.incomingRepo.Create(tx, req); err != nil {
			return err
		}

		return s.itemRepo.ApplyStockDelta(tx, item.ID, incomingDelta(nil, req), false, actor.AuditID())
	})
	if err != nil {
		return err
	}

	s.broadcastStockUpdate("incoming_created", req.ItemID, req.Quantity, actor)
	return nil
}

func (s *stockService) UpdateIncoming(id uuid.UUID, req *model.IncomingTransaction, actor model.Actor) (*model.IncomingTransaction, error) {
	var updated *model.IncomingTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.IncomingTransaction
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return ErrTransactionNotFound
		}
		if req.ItemID != uuid.Nil && req.ItemID != existing.ItemID {
			return ErrItemChanged
		}

		old := existing

		existing.Quantity = req.Quantity
		existing.Status = req.Status
		existing.Notes = req.Notes
		existing.SupplierID = req.SupplierID
		if !req.TransactionDate.IsZero() {
			existing.TransactionDate = req.TransactionDate
		}
		existing.UpdatedBy = actor.AuditID()

		if errs := validator.ValidateStruct(&existing); len(errs) > 0 {
			return validationError(errs)
		}

		if err := s.itemRepo.ApplyStockDelta(tx, existing.ItemID, incomingDelta(&old, &existing), false, actor.AuditID()); err != nil {
			return err
		}
		if err := s.incomingRepo.Save(tx, &existing); err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStockUpdate("incoming_updated", updated.ItemID, updated.Quantity, actor)
	return updated, nil
}

func (s *stockService) GetIncoming(id uuid.UUID) (*model.IncomingTransaction, error) {
	return s.incomingRepo.FindByID(id)
}

func (s *stockService) ListIncoming(filter repository.TransactionFilter) ([]model.IncomingTransaction, error) {
	return s.incomingRepo.FindAll(filter)
}

func (s *stockService) CreateOutgoing(req *model.OutgoingTransaction, actor model.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.CreateOutgoingInTx(tx, req, actor)
	})
	if err != nil {
		return err
	}

	s.broadcastStockUpdate("outgoing_created", req.ItemID, req.Quantity, actor)
	return nil
}

func (s *stockService) CreateOutgoingInTx(tx *gorm.DB, req *model.OutgoingTransaction, actor model.Actor) error {
	var item model.Item
	if err := tx.First(&item, "id = ?", req.ItemID).Error; err != nil {
		return ErrItemNotFound
	}

	number, err := NextTransactionNumber(tx, &model.OutgoingTransaction{}, "transaction_number", model.OutgoingTransactionNumberPrefix, time.Now())
	if err != nil {
		return err
	}
	req.TransactionNumber = number
	req.ReleasedByID = &actor.ID
	req.CreatedBy = actor.AuditID()
	req.UpdatedBy = actor.AuditID()

	// Decrement first: the guarded delta is the stock check, so an
	// insufficient release aborts before the log row exists
	if err := s.itemRepo.ApplyStockDelta(tx, item.ID, outgoingDelta(nil, req), true, actor.AuditID()); err != nil {
		return err
	}

	return s.outgoingRepo.Create(tx, req)
}

func (s *stockService) UpdateOutgoing(id uuid.UUID, req *model.OutgoingTransaction, actor model.Actor) (*model.OutgoingTransaction, error) {
	var updated *model.OutgoingTransaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.OutgoingTransaction
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return ErrTransactionNotFound
		}
		if req.ItemID != uuid.Nil && req.ItemID != existing.ItemID {
			return ErrItemChanged
		}

		old := existing

		existing.Quantity = req.Quantity
		existing.Status = req.Status
		existing.Purpose = req.Purpose
		existing.Notes = req.Notes
		if !req.TransactionDate.IsZero() {
			existing.TransactionDate = req.TransactionDate
		}
		existing.UpdatedBy = actor.AuditID()

		if errs := validator.ValidateStruct(&existing); len(errs) > 0 {
			return validationError(errs)
		}

		if err := s.itemRepo.ApplyStockDelta(tx, existing.ItemID, outgoingDelta(&old, &existing), true, actor.AuditID()); err != nil {
			return err
		}
		if err := s.outgoingRepo.Save(tx, &existing); err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStockUpdate("outgoing_updated", updated.ItemID, updated.Quantity, actor)
	return updated, nil
}

func (s *stockService) GetOutgoing(id uuid.UUID) (*model.OutgoingTransaction, error) {
	return s.outgoingRepo.FindByID(id)
}

func (s *stockService) ListOutgoing(filter repository.TransactionFilter) ([]model.OutgoingTransaction, error) {
	return s.outgoingRepo.FindAll(filter)
}

func (s *stockService) broadcastStockUpdate(action string, itemID uuid.UUID, quantity int, actor model.Actor) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":     "stock_update",
			"action":   action,
			"item_id":  itemID,
			"quantity": quantity,
			"user": map[string]interface{}{
				"id":   actor.ID,
				"name": actor.Name,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
