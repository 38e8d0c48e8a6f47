package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"musicstore/internal/domain"
	"musicstore/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role.
// Must run after JWTAuth. A wrong role is sent to the account view.
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token",
				gin.H{"redirect": LoginRedirect(c.Request.URL.RequestURI())})
			return
		}

		if role != string(requiredRole) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions",
				gin.H{"redirect": AccountPath})
			return
		}

		c.Next()
	}
}

// AdminOnly is the "is admin" gate.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// IsAdmin reports whether the request was authenticated as an admin.
func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxRole) == string(domain.RoleAdmin)
}
