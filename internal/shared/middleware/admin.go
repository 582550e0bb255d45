package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postboard-backend/internal/shared/response"
)

const RoleAdmin = "admin"

// AdminMiddleware checks if user has admin role.
// Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok || role != RoleAdmin {
			response.AbortWithError(c, http.StatusForbidden, "Access denied: admin role required")
			return
		}

		c.Next()
	}
}
