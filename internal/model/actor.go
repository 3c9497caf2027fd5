package model

import "github.com/google/uuid"

// Actor is the request-scoped identity resolved once at the auth boundary
// and passed explicitly to every operation.
type Actor struct {
	ID       uuid.UUID
	Username string
	Name     string
	Role     Role
}

// AuditID is the value written into audit columns
func (a Actor) AuditID() string {
	return a.ID.String()
}
