package model

import "time"

// User represents a login account. Passwords are only ever stored hashed;
// the hash never leaves the API.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for creating a new user account.
// Password arrives in plaintext and is hashed before persistence.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	RoleID   int    `json:"role_id" binding:"required"`
}

// UpdateUserRequest is the payload for updating an existing user.
// It deliberately has no password field: password changes go through
// the dedicated password endpoint so profile updates never re-hash.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	RoleID   int    `json:"role_id" binding:"required"`
}

// UpdatePasswordRequest is the payload for setting a new password.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=128"`
}
