package model

// Category groups items in the master data
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`

	Items []Item `json:"items,omitempty"`
}
