package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScopeAdmin(t *testing.T) {
	scope, err := ResolveScope("ADMIN", 0)
	require.NoError(t, err)
	assert.Equal(t, ScopeAdmin, scope.Kind)
	assert.True(t, scope.IsAdmin())
}

func TestResolveScopeStudent(t *testing.T) {
	scope, err := ResolveScope("STUDENT", 42)
	require.NoError(t, err)
	assert.Equal(t, ScopeStudent, scope.Kind)
	assert.Equal(t, 42, scope.StudentID)
	assert.False(t, scope.IsAdmin())
}

func TestResolveScopeCaseInsensitive(t *testing.T) {
	for _, name := range []string{"admin", "Admin", " ADMIN ", "aDmIn"} {
		scope, err := ResolveScope(name, 0)
		require.NoError(t, err, "role %q", name)
		assert.Equal(t, ScopeAdmin, scope.Kind)
	}

	scope, err := ResolveScope("student", 7)
	require.NoError(t, err)
	assert.Equal(t, ScopeStudent, scope.Kind)
}

func TestResolveScopeUnknownRole(t *testing.T) {
	for _, name := range []string{"", "TEACHER", "SUPERADMIN", "root"} {
		_, err := ResolveScope(name, 0)
		assert.ErrorIs(t, err, ErrUnknownRole, "role %q", name)
	}
}

func TestCanAccessStudent(t *testing.T) {
	admin := Scope{Kind: ScopeAdmin}
	assert.True(t, admin.CanAccessStudent(1))
	assert.True(t, admin.CanAccessStudent(999))

	student := Scope{Kind: ScopeStudent, StudentID: 5}
	assert.True(t, student.CanAccessStudent(5))
	assert.False(t, student.CanAccessStudent(6))
}

func TestCanAccessStudentWithoutProfile(t *testing.T) {
	// A student account with no linked profile owns nothing, including
	// the zero ID itself.
	orphan := Scope{Kind: ScopeStudent, StudentID: 0}
	assert.False(t, orphan.CanAccessStudent(0))
	assert.False(t, orphan.CanAccessStudent(1))
}
