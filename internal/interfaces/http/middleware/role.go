package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onlineshop/backend/internal/domain/identity"
	"github.com/onlineshop/backend/internal/interfaces/http/dto"
)

// RequireRole aborts with 403 unless the authenticated role matches.
// Must run after JWTAuth.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != role.String() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route group to the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}
