package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key under which the authenticated user's ID is stored in
// the request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID placed in the
// context by AuthMiddleware. The boolean reports whether it was present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
