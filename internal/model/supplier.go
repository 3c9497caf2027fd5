package model

// Supplier is a source of incoming stock. Code is generated, not user supplied.
type Supplier struct {
	BaseModel
	Code          string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// SupplierCodePrefix for generated supplier codes (SUP0001, SUP0002, ...)
const SupplierCodePrefix = "SUP"
