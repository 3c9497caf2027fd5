package service

import (
	"errors"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemCodeExists   = errors.New("item code already exists")
	ErrCategoryExists   = errors.New("category name already exists")
)

// SupplierDetail is the supplier view enriched with its receipt history
type SupplierDetail struct {
	Supplier       model.Supplier                `json:"supplier"`
	RecentIncoming []model.IncomingTransaction   `json:"recent_incoming"`
	Summary        repository.TransactionSummary `json:"summary"`
}

// ItemDetail is the item view enriched with recent ledger activity
type ItemDetail struct {
	Item           model.Item                  `json:"item"`
	StockStatus    model.StockStatus           `json:"stock_status"`
	RecentIncoming []model.IncomingTransaction `json:"recent_incoming"`
	RecentOutgoing []model.OutgoingTransaction `json:"recent_outgoing"`
}

// InventoryService owns master data: categories, suppliers and items.
// Item stock is never written here; the ledger belongs to StockService.
type InventoryService interface {
	CreateCategory(req *model.Category, actor model.Actor) error
	UpdateCategory(id uuid.UUID, req *model.Category, actor model.Actor) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
	GetAllCategories(search string) ([]model.Category, error)

	CreateSupplier(req *model.Supplier, actor model.Actor) error
	UpdateSupplier(id uuid.UUID, req *model.Supplier, actor model.Actor) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	GetSupplierDetail(id uuid.UUID) (*SupplierDetail, error)
	GetAllSuppliers(filter repository.SupplierFilter) ([]model.Supplier, error)

	CreateItem(req *model.Item, actor model.Actor) error
	UpdateItem(id uuid.UUID, req *model.Item, actor model.Actor) (*model.Item, error)
	DeleteItem(id uuid.UUID) error
	GetItemDetail(id uuid.UUID) (*ItemDetail, error)
	GetAllItems(filter repository.ItemFilter) ([]model.Item, error)
}

type inventoryService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	incomingRepo repository.IncomingRepository
	outgoingRepo repository.OutgoingRepository
	db           *gorm.DB
}

func NewInventoryService(
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	incomingRepo repository.IncomingRepository,
	outgoingRepo repository.OutgoingRepository,
	db *gorm.DB,
) InventoryService {
	return &inventoryService{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		incomingRepo: incomingRepo,
		outgoingRepo: outgoingRepo,
		db:           db,
	}
}

func (s *inventoryService) CreateCategory(req *model.Category, actor model.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	existing, _ := s.categoryRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrCategoryExists
	}

	req.CreatedBy = actor.AuditID()
	req.UpdatedBy = actor.AuditID()
	return s.categoryRepo.Create(req)
}

func (s *inventoryService) UpdateCategory(id uuid.UUID, req *model.Category, actor model.Actor) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.UpdatedBy = actor.AuditID()

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *inventoryService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

func (s *inventoryService) GetAllCategories(search string) ([]model.Category, error) {
	return s.categoryRepo.FindAll(search)
}

func (s *inventoryService) CreateSupplier(req *model.Supplier, actor model.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	// Code generation and insert share one transaction so concurrent
	// creates cannot pick the same code
	return s.db.Transaction(func(tx *gorm.DB) error {
		last, err := s.supplierRepo.LastCode(tx)
		if err != nil {
			return err
		}
		req.Code = NextSupplierCode(model.SupplierCodePrefix, last)
		req.CreatedBy = actor.AuditID()
		req.UpdatedBy = actor.AuditID()
		return tx.Create(req).Error
	})
}

func (s *inventoryService) UpdateSupplier(id uuid.UUID, req *model.Supplier, actor model.Actor) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	// Code is generated once and kept
	existing.Name = req.Name
	existing.ContactPerson = req.ContactPerson
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.IsActive = req.IsActive
	existing.UpdatedBy = actor.AuditID()

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *inventoryService) DeleteSupplier(id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return ErrSupplierNotFound
	}
	return s.supplierRepo.Delete(id)
}

func (s *inventoryService) GetSupplierDetail(id uuid.UUID) (*SupplierDetail, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	recent, err := s.incomingRepo.FindRecentBySupplier(id, 5)
	if err != nil {
		return nil, err
	}
	summary, err := s.incomingRepo.SupplierSummary(id)
	if err != nil {
		return nil, err
	}

	return &SupplierDetail{
		Supplier:       *supplier,
		RecentIncoming: recent,
		Summary:        *summary,
	}, nil
}

func (s *inventoryService) GetAllSuppliers(filter repository.SupplierFilter) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(filter)
}

func (s *inventoryService) CreateItem(req *model.Item, actor model.Actor) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	existing, _ := s.itemRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrItemCodeExists
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return ErrCategoryNotFound
	}

	// New items start at the declared opening stock; afterwards the ledger
	// is transaction-driven only
	req.CreatedBy = actor.AuditID()
	req.UpdatedBy = actor.AuditID()
	return s.itemRepo.Create(req)
}

func (s *inventoryService) UpdateItem(id uuid.UUID, req *model.Item, actor model.Actor) (*model.Item, error) {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}
	if req.CategoryID != uuid.Nil && req.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
			return nil, ErrCategoryNotFound
		}
		existing.CategoryID = req.CategoryID
	}
	if req.Code != existing.Code {
		duplicate, _ := s.itemRepo.FindByCode(req.Code)
		if duplicate != nil && duplicate.ID != uuid.Nil {
			return nil, ErrItemCodeExists
		}
	}

	// CurrentStock is deliberately not copied: the ledger moves only
	// through incoming/outgoing transactions
	existing.Code = req.Code
	existing.Name = req.Name
	existing.Unit = req.Unit
	existing.MinimumStock = req.MinimumStock
	existing.IsActive = req.IsActive
	existing.UpdatedBy = actor.AuditID()
	existing.Category = nil

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := s.itemRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *inventoryService) DeleteItem(id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(id); err != nil {
		return ErrItemNotFound
	}
	return s.itemRepo.Delete(id)
}

func (s *inventoryService) GetItemDetail(id uuid.UUID) (*ItemDetail, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, ErrItemNotFound
	}

	recentIn, err := s.incomingRepo.FindRecentByItem(id, 5)
	if err != nil {
		return nil, err
	}
	recentOut, err := s.outgoingRepo.FindRecentByItem(id, 5)
	if err != nil {
		return nil, err
	}

	return &ItemDetail{
		Item:           *item,
		StockStatus:    item.StockStatus(),
		RecentIncoming: recentIn,
		RecentOutgoing: recentOut,
	}, nil
}

func (s *inventoryService) GetAllItems(filter repository.ItemFilter) ([]model.Item, error) {
	return s.itemRepo.FindAll(filter)
}
