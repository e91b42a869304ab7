package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mysterymeet/backend/internal/auth"
)

const userIDKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user id in the context.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse("Invalid or missing token", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the caller's user id when a valid token is present
// but lets anonymous requests through. Feed and single-event reads support
// unauthenticated viewers, who only ever see public locations.
func OptionalAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, authService); ok {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func bearerUserID(c *gin.Context, authService *auth.Service) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	userID, err := authService.VerifyToken(parts[1])
	if err != nil {
		return "", false
	}
	return userID, true
}

// CallerID returns the authenticated user id, or "" for anonymous callers.
func CallerID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
