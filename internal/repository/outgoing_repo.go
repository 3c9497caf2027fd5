package repository

import (
	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutgoingRepository interface {
	Create(tx *gorm.DB, trx *model.OutgoingTransaction) error
	Save(tx *gorm.DB, trx *model.OutgoingTransaction) error
	FindByID(id uuid.UUID) (*model.OutgoingTransaction, error)
	FindByRequestItemID(requestItemID uuid.UUID) (*model.OutgoingTransaction, error)
	FindRecentByItem(itemID uuid.UUID, limit int) ([]model.OutgoingTransaction, error)
	FindAll(filter TransactionFilter) ([]model.OutgoingTransaction, error)
	Summary(filter TransactionFilter) (*TransactionSummary, error)
}

type outgoingRepo struct {
	db *gorm.DB
}

func NewOutgoingRepo(db *gorm.DB) OutgoingRepository {
	return &outgoingRepo{db}
}

func (r *outgoingRepo) Create(tx *gorm.DB, trx *model.OutgoingTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(trx).Error
}

func (r *outgoingRepo) Save(tx *gorm.DB, trx *model.OutgoingTransaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(trx).Error
}

func (r *outgoingRepo) FindByID(id uuid.UUID) (*model.OutgoingTransaction, error) {
	var trx model.OutgoingTransaction
	err := r.db.Preload("Item").Preload("Item.Category").Preload("RequestItem").Preload("ReleasedBy").
		First(&trx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *outgoingRepo) FindByRequestItemID(requestItemID uuid.UUID) (*model.OutgoingTransaction, error) {
	var trx model.OutgoingTransaction
	err := r.db.Preload("Item").First(&trx, "request_item_id = ?", requestItemID).Error
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *outgoingRepo) FindRecentByItem(itemID uuid.UUID, limit int) ([]model.OutgoingTransaction, error) {
	var transactions []model.OutgoingTransaction
	err := r.db.Preload("ReleasedBy").
		Where("item_id = ?", itemID).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *outgoingRepo) filtered(filter TransactionFilter) *gorm.DB {
	q := r.db.Model(&model.OutgoingTransaction{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Joins("JOIN items ON items.id = outgoing_transactions.item_id").
			Where("outgoing_transactions.transaction_number LIKE ? OR items.name LIKE ? OR outgoing_transactions.purpose LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("outgoing_transactions.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("outgoing_transactions.transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("outgoing_transactions.transaction_date <= ?", *filter.DateTo)
	}

	return q
}

func (r *outgoingRepo) FindAll(filter TransactionFilter) ([]model.OutgoingTransaction, error) {
	var transactions []model.OutgoingTransaction
	err := r.filtered(filter).
		Preload("Item").Preload("RequestItem").Preload("ReleasedBy").
		Order("outgoing_transactions.transaction_date DESC, outgoing_transactions.transaction_number DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *outgoingRepo) Summary(filter TransactionFilter) (*TransactionSummary, error) {
	var summary TransactionSummary
	if err := r.filtered(filter).Count(&summary.TotalTransactions).Error; err != nil {
		return nil, err
	}
	err := r.filtered(filter).
		Select("COALESCE(SUM(outgoing_transactions.quantity), 0)").
		Scan(&summary.TotalQuantity).Error
	return &summary, err
}
