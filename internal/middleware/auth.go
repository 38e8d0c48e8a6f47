package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"musicstore/internal/pkg/jwt"
	"musicstore/internal/pkg/response"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"

	LoginPath   = "/login"
	AccountPath = "/account"
)

// LoginRedirect is where an unauthenticated client is sent, carrying the
// path it was trying to reach.
func LoginRedirect(returnPath string) string {
	return LoginPath + "?returnUrl=" + url.QueryEscape(returnPath)
}

// JWTAuth is the "is authenticated" gate. On failure it answers 401 with a
// redirect hint to the login view.
func JWTAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirect := gin.H{"redirect": LoginRedirect(c.Request.URL.RequestURI())}

		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required", redirect)
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'", redirect)
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Empty token", redirect)
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token", redirect)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}

// OptionalAuth sets the user when a valid bearer is present and never aborts.
func OptionalAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if claims, err := j.ValidateToken(strings.TrimSpace(parts[1])); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxRole, claims.Role)
			}
		}
		c.Next()
	}
}
