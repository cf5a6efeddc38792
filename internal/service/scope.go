package service

import (
	"fmt"
	"strings"

	"github.com/smitedu/institute-backend/internal/model"
)

// ScopeKind distinguishes the two authorization scopes.
type ScopeKind string

const (
	ScopeAdmin   ScopeKind = "ADMIN"
	ScopeStudent ScopeKind = "STUDENT"
)

// Scope is the set of records a user may touch. AdminScope is unrestricted;
// StudentScope is pinned to the user's linked student profile.
type Scope struct {
	Kind ScopeKind
	// StudentID is the linked student profile for StudentScope; zero for
	// AdminScope or when the account has no profile yet.
	StudentID int
}

// ResolveScope maps a role name to an authorization scope. Matching is
// case-insensitive. A role outside {ADMIN, STUDENT} fails with ErrUnknownRole
// rather than silently defaulting to either scope.
func ResolveScope(roleName string, studentID int) (Scope, error) {
	switch strings.ToUpper(strings.TrimSpace(roleName)) {
	case model.RoleAdmin:
		return Scope{Kind: ScopeAdmin}, nil
	case model.RoleStudent:
		return Scope{Kind: ScopeStudent, StudentID: studentID}, nil
	default:
		return Scope{}, fmt.Errorf("%w: %q", ErrUnknownRole, roleName)
	}
}

// IsAdmin reports whether the scope is unrestricted.
func (s Scope) IsAdmin() bool {
	return s.Kind == ScopeAdmin
}

// CanAccessStudent reports whether records owned by the given student are
// within scope. A student account with no linked profile owns nothing.
func (s Scope) CanAccessStudent(studentID int) bool {
	if s.Kind == ScopeAdmin {
		return true
	}
	return s.StudentID != 0 && s.StudentID == studentID
}
