package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/shared/response"
	"postboard-backend/pkg/jwt"
)

// Keys set on gin.Context by AuthMiddleware
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware - xác thực "Authorization: Bearer <token>"
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("rejected access token")
			response.AbortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "invalid user ID in token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// UserIDFromContext trả về identity đã được AuthMiddleware set
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
