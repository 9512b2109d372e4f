package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskhub/internal/model"

	"github.com/gin-gonic/gin"
)

// Context keys set for downstream handlers.
const (
	UserIDKey = "userID"
	TokenKey  = "authToken"
)

// TokenResolver maps an opaque bearer token to its user.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// TokenAuthMiddleware authenticates requests against the token store. It
// only establishes identity; authorization stays a handler concern.
func TokenAuthMiddleware(tokens TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		user, err := tokens.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(TokenKey, parts[1])
		c.Next()
	}
}
