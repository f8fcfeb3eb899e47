package middleware

import (
	"net/http"
	"strings"

	"carebook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set for downstream handlers.
const (
	CallerIDKey   = "callerID"
	CallerRoleKey = "callerRole"
)

// Caller roles.
const (
	RoleClient   = "client"
	RoleProvider = "provider"
)

// AuthRequired resolves the Bearer token to a caller identity and stores it
// in the request context. Token issuance itself lives with the identity
// collaborator; the core only consumes a pre-validated identity.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		callerID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || callerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CallerIDKey, callerID)
		c.Set(CallerRoleKey, role)
		c.Next()
	}
}

// RequireRole rejects callers whose token does not carry the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CallerRoleKey) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
