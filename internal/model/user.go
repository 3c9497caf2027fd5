package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role determines which operation groups a user may access
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleWarehouseStaff  Role = "warehouse_staff"
	RoleProductionStaff Role = "production_staff"
	RoleDirector        Role = "director"
)

// Roles selectable when creating a user
var ValidRoles = []Role{RoleAdmin, RoleWarehouseStaff, RoleProductionStaff, RoleDirector}

// DisplayName returns the human readable role label
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleWarehouseStaff:
		return "Warehouse Staff"
	case RoleProductionStaff:
		return "Production Staff"
	case RoleDirector:
		return "Director"
	}
	return string(r)
}

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Username      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name          string     `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Role          Role       `gorm:"type:varchar(50);not null;default:'warehouse_staff'" json:"role" validate:"required,oneof=admin warehouse_staff production_staff director"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	ResetPassword bool       `gorm:"default:false" json:"reset_password"` // Forced reset on next login
	TokenVersion  string     `gorm:"type:varchar(255);default:''" json:"-"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	Name          string     `json:"name"`
	Role          Role       `json:"role"`
	RoleDisplay   string     `json:"role_display"`
	IsActive      bool       `json:"is_active"`
	ResetPassword bool       `json:"reset_password"`
	LastSeenAt    *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Name:          u.Name,
		Role:          u.Role,
		RoleDisplay:   u.Role.DisplayName(),
		IsActive:      u.IsActive,
		ResetPassword: u.ResetPassword,
		LastSeenAt:    u.LastSeenAt,
		CreatedAt:     u.CreatedAt,
	}
}
