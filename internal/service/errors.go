package service

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// Domain error kinds surfaced to the boundary layer. Uniqueness violations
// (duplicate enrollment, attendance, username, email) live in the repository
// package next to the constraint translation that produces them.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// notFoundOr maps a missing-row error to ErrNotFound and passes
// everything else through.
func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
