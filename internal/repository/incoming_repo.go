package repository

import (
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter narrows incoming/outgoing transaction lists and reports
type TransactionFilter struct {
	Search   string // matches transaction number, item name, supplier name / purpose
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// TransactionSummary aggregates a filtered transaction list for reports
type TransactionSummary struct {
	TotalTransactions int64 `json:"total_transactions"`
	TotalQuantity     int64 `json:"total_quantity"`
}

type IncomingRepository interface {
	Create(tx *gorm.DB, trx *model.IncomingTransaction) error
	Save(tx *gorm.DB, trx *model.IncomingTransaction) error
	FindByID(id uuid.UUID) (*model.IncomingTransaction, error)
	FindAll(filter TransactionFilter) ([]model.IncomingTransaction, error)
	Summary(filter TransactionFilter) (*TransactionSummary, error)
	FindRecentByItem(itemID uuid.UUID, limit int) ([]model.IncomingTransaction, error)
	FindRecentBySupplier(supplierID uuid.UUID, limit int) ([]model.IncomingTransaction, error)
	SupplierSummary(supplierID uuid.UUID) (*TransactionSummary, error)
}

type incomingRepo struct {
	db *gorm.DB
}

func NewIncomingRepo(db *gorm.DB) IncomingRepository {
	return &incomingRepo{db}
}

func (r *incomingRepo) Create(tx *gorm.DB, trx *model.IncomingTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(trx).Error
}

func (r *incomingRepo) Save(tx *gorm.DB, trx *model.IncomingTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(trx).Error
}

func (r *incomingRepo) FindByID(id uuid.UUID) (*model.IncomingTransaction, error) {
	var trx model.IncomingTransaction
	err := r.db.Preload("Item").Preload("Item.Category").Preload("Supplier").Preload("ReceivedBy").
		First(&trx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *incomingRepo) filtered(filter TransactionFilter) *gorm.DB {
	q := r.db.Model(&model.IncomingTransaction{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Joins("JOIN items ON items.id = incoming_transactions.item_id").
			Joins("LEFT JOIN suppliers ON suppliers.id = incoming_transactions.supplier_id").
			Where("incoming_transactions.transaction_number LIKE ? OR items.name LIKE ? OR suppliers.name LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("incoming_transactions.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("incoming_transactions.transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("incoming_transactions.transaction_date <= ?", *filter.DateTo)
	}

	return q
}

func (r *incomingRepo) FindAll(filter TransactionFilter) ([]model.IncomingTransaction, error) {
	var transactions []model.IncomingTransaction
	err := r.filtered(filter).
		Preload("Item").Preload("Supplier").Preload("ReceivedBy").
		Order("incoming_transactions.transaction_date DESC, incoming_transactions.transaction_number DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *incomingRepo) Summary(filter TransactionFilter) (*TransactionSummary, error) {
	var summary TransactionSummary
	q := r.filtered(filter)
	if err := q.Count(&summary.TotalTransactions).Error; err != nil {
		return nil, err
	}
	err := r.filtered(filter).
		Select("COALESCE(SUM(incoming_transactions.quantity), 0)").
		Scan(&summary.TotalQuantity).Error
	return &summary, err
}

func (r *incomingRepo) FindRecentByItem(itemID uuid.UUID, limit int) ([]model.IncomingTransaction, error) {
	var transactions []model.IncomingTransaction
	err := r.db.Preload("Supplier").Preload("ReceivedBy").
		Where("item_id = ?", itemID).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *incomingRepo) FindRecentBySupplier(supplierID uuid.UUID, limit int) ([]model.IncomingTransaction, error) {
	var transactions []model.IncomingTransaction
	err := r.db.Preload("Item").
		Where("supplier_id = ?", supplierID).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *incomingRepo) SupplierSummary(supplierID uuid.UUID) (*TransactionSummary, error) {
	var summary TransactionSummary
	q := r.db.Model(&model.IncomingTransaction{}).Where("supplier_id = ?", supplierID)
	if err := q.Count(&summary.TotalTransactions).Error; err != nil {
		return nil, err
	}
	err := r.db.Model(&model.IncomingTransaction{}).
		Where("supplier_id = ?", supplierID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&summary.TotalQuantity).Error
	return &summary, err
}
