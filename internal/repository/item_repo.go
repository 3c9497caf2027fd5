package repository

import (
	"errors"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a decrement would drive the ledger negative
var ErrInsufficientStock = errors.New("insufficient stock remaining")

// ItemFilter narrows the item list
type ItemFilter struct {
	Search      string // matches code or name
	CategoryID  *uuid.UUID
	StockStatus model.StockStatus // applied in memory, derived classification
	ActiveOnly  bool
}

type ItemRepository interface {
	Create(item *model.Item) error
	Update(item *model.Item) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Item, error)
	FindByCode(code string) (*model.Item, error)
	FindAll(filter ItemFilter) ([]model.Item, error)
	ApplyStockDelta(tx *gorm.DB, id uuid.UUID, delta int, enforceNonNegative bool, updatedBy string) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(item *model.Item) error {
	return r.db.Create(item).Error
}

func (r *itemRepo) Update(item *model.Item) error {
	return r.db.Save(item).Error
}

func (r *itemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) FindByID(id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByCode(code string) (*model.Item, error) {
	var item model.Item
	if err := r.db.First(&item, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindAll(filter ItemFilter) ([]model.Item, error) {
	var items []model.Item
	q := r.db.Model(&model.Item{}).Preload("Category")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("code LIKE ? OR name LIKE ?", like, like)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	// Stock status is derived from two columns, so it is filtered here
	// rather than in SQL
	if filter.StockStatus != "" {
		filtered := items[:0]
		for _, item := range items {
			if item.StockStatus() == filter.StockStatus {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return items, nil
}

// ApplyStockDelta mutates the ledger atomically in a single UPDATE. When
// enforceNonNegative is set, negative deltas carry a current_stock >= |delta|
// guard in the WHERE clause, so two concurrent releases cannot both pass a
// stale stock check (compare-and-swap, no row lock needed). Unguarded calls
// may drive the ledger negative, which reverts of received stock rely on.
func (r *itemRepo) ApplyStockDelta(tx *gorm.DB, id uuid.UUID, delta int, enforceNonNegative bool, updatedBy string) error {
	if delta == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}

	guarded := enforceNonNegative && delta < 0
	q := tx.Model(&model.Item{}).Where("id = ?", id)
	if guarded {
		q = q.Where("current_stock >= ?", -delta)
	}

	res := q.Updates(map[string]interface{}{
		"current_stock": gorm.Expr("current_stock + ?", delta),
		"updated_by":    updatedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if guarded {
			return ErrInsufficientStock
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}
