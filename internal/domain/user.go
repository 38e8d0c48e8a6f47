package domain

import "time"

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// User is a registered storefront account. PasswordHash is persisted with the
// collection but never rendered; handlers respond with a view type instead.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) GetID() string   { return u.ID }
func (u *User) SetID(id string) { u.ID = id }

// AdminUser is the record managed from the admin accounts screen.
type AdminUser struct {
	ID     string   `json:"id"`
	Name   string   `json:"name" validate:"required,min=2"`
	Email  string   `json:"email" validate:"required,email"`
	Role   UserRole `json:"role" validate:"required,oneof=client admin"`
	Active bool     `json:"active"`
}

func (a *AdminUser) GetID() string   { return a.ID }
func (a *AdminUser) SetID(id string) { a.ID = id }
