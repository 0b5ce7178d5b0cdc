package domain

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// DefaultRole is assigned when a registration does not name one.
const DefaultRole = RoleCustomer

// Role is a named permission group referenced by users.
type Role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// User models a credential record in the store.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       uint      `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
