package middleware

import (
	"net/http"
	"strings"

	"servify/models"
	"servify/utils"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks that a presented token's hash is still the user's
// current one. A revoked or superseded token fails the check even though
// its signature is valid.
type TokenVerifier interface {
	VerifyTokenHash(userID, tokenHash string) error
}

// JWTAuthMiddleware validates the bearer token, checks it against the
// user's stored token hash, and places userID and role in the request
// context.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if err := verifier.VerifyTokenHash(userID, utils.HashToken(tokenString)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is no longer valid"})
			return
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Admins pass everywhere.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := c.Get("role")
		currentRole, _ := current.(string)
		if currentRole != role && currentRole != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
