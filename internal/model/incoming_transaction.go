package model

import (
	"time"

	"github.com/google/uuid"
)

// IncomingStatus lifecycle for stock receipts
type IncomingStatus string

const (
	IncomingPending   IncomingStatus = "pending"
	IncomingReceived  IncomingStatus = "received"
	IncomingCancelled IncomingStatus = "cancelled"
)

// DisplayName returns the human readable status label
func (s IncomingStatus) DisplayName() string {
	switch s {
	case IncomingPending:
		return "Pending"
	case IncomingReceived:
		return "Received"
	case IncomingCancelled:
		return "Cancelled"
	}
	return string(s)
}

// IncomingTransactionNumberPrefix for generated transaction numbers (IN<YYYYMMDD><seq>)
const IncomingTransactionNumberPrefix = "IN"

// IncomingTransaction records a stock receipt. The quantity only counts
// against the item ledger while status is "received".
type IncomingTransaction struct {
	BaseModel
	TransactionNumber string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"transaction_number"`
	ItemID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id" validate:"uuid_required"`
	Item              *Item          `json:"item,omitempty" validate:"-"`
	SupplierID        *uuid.UUID     `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier          *Supplier      `json:"supplier,omitempty" validate:"-"`
	Quantity          int            `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TransactionDate   time.Time      `gorm:"type:date;not null;index" json:"transaction_date" validate:"required"`
	Status            IncomingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"required,oneof=pending received cancelled"`
	Notes             string         `gorm:"type:text" json:"notes"`
	ReceivedByID      *uuid.UUID     `gorm:"type:uuid" json:"received_by_id,omitempty"`
	ReceivedBy        *User          `json:"received_by,omitempty" validate:"-"`
}

// EffectiveQuantity is the quantity this record currently contributes to the ledger
func (t *IncomingTransaction) EffectiveQuantity() int {
	if t.Status == IncomingReceived {
		return t.Quantity
	}
	return 0
}
