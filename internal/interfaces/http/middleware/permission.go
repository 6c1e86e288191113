package middleware

import (
	"net/http"

	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequirePermission rejects requests whose role lacks the permission
func RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !auth.Can(role, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.Fail(dto.CodeForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAnyPermission allows the request when the role holds at least
// one of the given permissions. Handlers that serve both staff views
// and customer self-service views use this and branch on the role.
func RequireAnyPermission(perms ...auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		if role == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, perm := range perms {
			if auth.Can(role, perm) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.Fail(dto.CodeForbidden, "Insufficient permissions"))
	}
}
