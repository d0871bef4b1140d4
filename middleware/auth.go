package middleware

import (
	"context"
	"net/http"
	"strings"

	"blogapi/models"
	"blogapi/token"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// UserFinder resolves a token subject to a stored user. Implementations
// must exclude the password hash from the returned record and report an
// unknown id as (nil, nil) rather than an error.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Auth guards protected routes. It extracts the bearer token from the
// Authorization header, verifies it, resolves the subject to a user and
// attaches that user to the request context. Any failure aborts the
// request with a 401.
func Auth(tokens *token.Service, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "No token provided",
			})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Not authorized",
			})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Database error",
			})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "User not found",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth, or nil on an unguarded route.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
