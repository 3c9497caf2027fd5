package repository

import (
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestFilter narrows the requisition list
type RequestFilter struct {
	Search   string // matches request number, item name or purpose
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// RequestStatusCounts is the status breakdown shown on list and report views
type RequestStatusCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
}

type RequestRepository interface {
	Create(request *model.RequestItem) error
	Save(tx *gorm.DB, request *model.RequestItem) error
	FindByID(id uuid.UUID) (*model.RequestItem, error)
	FindPendingForUpdate(tx *gorm.DB, id uuid.UUID) (*model.RequestItem, error)
	FindAll(filter RequestFilter) ([]model.RequestItem, error)
	StatusCounts() (*RequestStatusCounts, error)
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db}
}

func (r *requestRepo) Create(request *model.RequestItem) error {
	return r.db.Create(request).Error
}

func (r *requestRepo) Save(tx *gorm.DB, request *model.RequestItem) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(request).Error
}

func (r *requestRepo) FindByID(id uuid.UUID) (*model.RequestItem, error) {
	var request model.RequestItem
	err := r.db.Preload("Item").Preload("Item.Category").
		Preload("RequestedBy").Preload("ApprovedBy").Preload("Outgoing").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindPendingForUpdate scopes the lookup to pending requisitions, so an
// approve or reject on an already-decided request fails the load instead of
// silently re-transitioning.
func (r *requestRepo) FindPendingForUpdate(tx *gorm.DB, id uuid.UUID) (*model.RequestItem, error) {
	if tx == nil {
		tx = r.db
	}
	var request model.RequestItem
	err := tx.Preload("Item").
		Where("status = ?", model.RequestPending).
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindAll(filter RequestFilter) ([]model.RequestItem, error) {
	var requests []model.RequestItem
	q := r.db.Model(&model.RequestItem{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Joins("JOIN items ON items.id = request_items.item_id").
			Where("request_items.request_number LIKE ? OR items.name LIKE ? OR request_items.purpose LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("request_items.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("request_items.request_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("request_items.request_date <= ?", *filter.DateTo)
	}

	err := q.Preload("Item").Preload("RequestedBy").Preload("ApprovedBy").
		Order("request_items.request_date DESC, request_items.request_number DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) StatusCounts() (*RequestStatusCounts, error) {
	var counts RequestStatusCounts
	if err := r.db.Model(&model.RequestItem{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}

	byStatus := map[model.RequestStatus]*int64{
		model.RequestPending:   &counts.Pending,
		model.RequestApproved:  &counts.Approved,
		model.RequestRejected:  &counts.Rejected,
		model.RequestCompleted: &counts.Completed,
	}
	for status, dst := range byStatus {
		if err := r.db.Model(&model.RequestItem{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	return &counts, nil
}
