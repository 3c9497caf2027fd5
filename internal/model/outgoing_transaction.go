package model

import (
	"time"

	"github.com/google/uuid"
)

// OutgoingStatus lifecycle for stock releases
type OutgoingStatus string

const (
	OutgoingPending   OutgoingStatus = "pending"
	OutgoingReleased  OutgoingStatus = "released"
	OutgoingCancelled OutgoingStatus = "cancelled"
)

// DisplayName returns the human readable status label
func (s OutgoingStatus) DisplayName() string {
	switch s {
	case OutgoingPending:
		return "Pending"
	case OutgoingReleased:
		return "Released"
	case OutgoingCancelled:
		return "Cancelled"
	}
	return string(s)
}

// OutgoingTransactionNumberPrefix for generated transaction numbers (OUT<YYYYMMDD><seq>)
const OutgoingTransactionNumberPrefix = "OUT"

// OutgoingTransaction records a stock release. The quantity is deducted from
// the item ledger while status is "released". At most one outgoing
// transaction exists per requisition (unique RequestItemID).
type OutgoingTransaction struct {
	BaseModel
	TransactionNumber string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"transaction_number"`
	RequestItemID     *uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"request_item_id,omitempty"`
	RequestItem       *RequestItem   `json:"request_item,omitempty" validate:"-"`
	ItemID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id" validate:"uuid_required"`
	Item              *Item          `json:"item,omitempty" validate:"-"`
	Quantity          int            `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TransactionDate   time.Time      `gorm:"type:date;not null;index" json:"transaction_date" validate:"required"`
	Purpose           string         `gorm:"type:varchar(255);not null" json:"purpose" validate:"required"`
	Status            OutgoingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"required,oneof=pending released cancelled"`
	Notes             string         `gorm:"type:text" json:"notes"`
	ReleasedByID      *uuid.UUID     `gorm:"type:uuid" json:"released_by_id,omitempty"`
	ReleasedBy        *User          `json:"released_by,omitempty" validate:"-"`
}

// EffectiveQuantity is the quantity this record currently deducts from the ledger
func (t *OutgoingTransaction) EffectiveQuantity() int {
	if t.Status == OutgoingReleased {
		return t.Quantity
	}
	return 0
}
