package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"health_guardian/internal/domain" // Principal type

	"github.com/gin-gonic/gin" // Gin web framework
)

// principalKey is where the verified caller is stored on the gin context
const principalKey = "principal"

// Verifier turns a bearer credential into a principal
type Verifier interface {
	Verify(token string) (domain.Principal, error)
}

// JWTAuthMiddleware validates bearer tokens and stores the caller's principal
func JWTAuthMiddleware(gate Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		principal, err := gate.Verify(tokenStr)               // Verify signature, expiry and role
		if err != nil {
			// If verification fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(principalKey, principal)    // Store principal in context
		c.Set("userID", principal.UserID) // Store userID for request logging
		c.Next()                          // Proceed to the next handler
	}
}

// PrincipalFrom returns the principal stored by JWTAuthMiddleware, or the zero principal
func PrincipalFrom(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}

// SetPrincipal stores p on the context as if JWTAuthMiddleware had verified it
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
	c.Set("userID", p.UserID)
}
