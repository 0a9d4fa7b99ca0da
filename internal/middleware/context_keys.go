package middleware

import "github.com/gin-gonic/gin"

// ownerIDKey is the key used to store the authenticated owner's ID in the
// request context.
const ownerIDKey = contextKey("ownerID")

// GetOwnerIDFromContext retrieves the authenticated owner ID from the Gin
// context. It returns the owner ID and a boolean indicating if it was found.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(ownerIDKey); v != nil {
		if ownerID, ok := v.(string); ok {
			return ownerID, true
		}
	}
	return "", false
}
