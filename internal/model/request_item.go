package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus lifecycle for production requisitions. Approved and rejected
// are terminal; completed exists in the schema for historical rows but no
// transition produces it.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// DisplayName returns the human readable status label
func (s RequestStatus) DisplayName() string {
	switch s {
	case RequestPending:
		return "Pending"
	case RequestApproved:
		return "Approved"
	case RequestRejected:
		return "Rejected"
	case RequestCompleted:
		return "Completed"
	}
	return string(s)
}

// RequestNumberPrefix for generated request numbers (REQ<YYYYMMDD><seq>)
const RequestNumberPrefix = "REQ"

// RequestItem is a production staff requisition for stock to be released.
// Approval spawns a one-to-one OutgoingTransaction.
type RequestItem struct {
	BaseModel
	RequestNumber   string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"request_number"`
	ItemID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"item_id" validate:"uuid_required"`
	Item            *Item         `json:"item,omitempty" validate:"-"`
	Quantity        int           `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	RequestDate     time.Time     `gorm:"type:date;not null;index" json:"request_date" validate:"required"`
	NeededDate      time.Time     `gorm:"type:date;not null" json:"needed_date" validate:"required"`
	Purpose         string        `gorm:"type:varchar(255);not null" json:"purpose" validate:"required"`
	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RequestedByID   *uuid.UUID    `gorm:"type:uuid" json:"requested_by_id,omitempty"`
	RequestedBy     *User         `json:"requested_by,omitempty" validate:"-"`
	ApprovedByID    *uuid.UUID    `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedBy      *User         `json:"approved_by,omitempty" validate:"-"`
	ApprovedDate    *time.Time    `json:"approved_date,omitempty"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason"`

	Outgoing *OutgoingTransaction `gorm:"foreignKey:RequestItemID" json:"outgoing,omitempty" validate:"-"`
}
