package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierFilter narrows the supplier list
type SupplierFilter struct {
	Search string // matches code, name or contact person
	Status string // "active" / "inactive" / ""
}

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	Update(supplier *model.Supplier) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Supplier, error)
	FindAll(filter SupplierFilter) ([]model.Supplier, error)
	LastCode(tx *gorm.DB) (string, error)
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) FindAll(filter SupplierFilter) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.Model(&model.Supplier{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("code LIKE ? OR name LIKE ? OR contact_person LIKE ?", like, like, like)
	}
	switch filter.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}

	err := q.Order("code ASC").Find(&suppliers).Error
	return suppliers, err
}

// LastCode returns the lexicographically greatest generated supplier code.
// Runs inside tx so code generation is consistent with the insert.
func (r *supplierRepo) LastCode(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = r.db
	}
	var code string
	err := tx.Model(&model.Supplier{}).
		Unscoped().
		Where("code LIKE ?", model.SupplierCodePrefix+"%").
		Order("code DESC").
		Limit(1).
		Pluck("code", &code).Error
	return code, err
}
