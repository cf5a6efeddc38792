package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smitedu/institute-backend/internal/response"
	"github.com/smitedu/institute-backend/internal/service"
)

// ContextKeyScope is the Gin context key for the resolved access scope.
const ContextKeyScope = "scope"

// RequireAdmin resolves the token's role to a scope and rejects anything
// but AdminScope. An unrecognized role is a hard failure, never a
// silent pass-through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := resolveScope(c)
		if !ok {
			return
		}
		if !scope.IsAdmin() {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}
		c.Set(ContextKeyScope, scope)
		c.Next()
	}
}

// RequireStudent resolves the token's role to a scope and rejects anything
// but StudentScope.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := resolveScope(c)
		if !ok {
			return
		}
		if scope.Kind != service.ScopeStudent {
			response.AbortFail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
			return
		}
		c.Set(ContextKeyScope, scope)
		c.Next()
	}
}

// GetScope retrieves the resolved access scope from the Gin context.
func GetScope(c *gin.Context) service.Scope {
	val, exists := c.Get(ContextKeyScope)
	if !exists {
		return service.Scope{}
	}
	scope, ok := val.(service.Scope)
	if !ok {
		return service.Scope{}
	}
	return scope
}

func resolveScope(c *gin.Context) (service.Scope, bool) {
	claims := GetClaims(c)
	if claims == nil {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return service.Scope{}, false
	}

	scope, err := service.ResolveScope(claims.Role, claims.StudentID)
	if err != nil {
		response.AbortFail(c, http.StatusForbidden, response.ErrUnknownRole)
		return service.Scope{}, false
	}
	return scope, true
}
