package model

import "github.com/google/uuid"

// StockStatus classifies an item's current stock against its minimum threshold
type StockStatus string

const (
	StockStatusIn  StockStatus = "in_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusOut StockStatus = "out_of_stock"
)

// Item is the master record for a warehouse good. CurrentStock is the ledger:
// it equals the net of all received/released transactions ever applied and is
// only mutated through the stock service.
type Item struct {
	BaseModel
	Code         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category     *Category  `json:"category,omitempty" validate:"-"`
	Unit         string     `gorm:"type:varchar(20);not null" json:"unit" validate:"required"`
	MinimumStock int        `gorm:"not null;default:0" json:"minimum_stock" validate:"gte=0"`
	CurrentStock int        `gorm:"not null;default:0" json:"current_stock"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	Incoming []IncomingTransaction `json:"incoming,omitempty"`
	Outgoing []OutgoingTransaction `json:"outgoing,omitempty"`
}

// StockStatus derives the classification from the ledger value
func (i *Item) StockStatus() StockStatus {
	if i.CurrentStock <= 0 {
		return StockStatusOut
	}
	if i.CurrentStock <= i.MinimumStock {
		return StockStatusLow
	}
	return StockStatusIn
}
