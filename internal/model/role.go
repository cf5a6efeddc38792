package model

import "time"

// Well-known role names. Authorization scope is derived from these;
// anything else is rejected at scope resolution.
const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// Role represents an authorization role.
type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRoleRequest is the payload for creating or updating a role.
type CreateRoleRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}
