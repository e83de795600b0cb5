package middleware

import (
	"context"  // Context for the role lookup
	"net/http" // HTTP status codes

	"health_guardian/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserFinder loads the stored user behind a principal
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c) // Get principal from context
		// Check if a principal exists in context
		if principal.UserID == 0 {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), principal.UserID) // Fetch user from database
		if err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if user role is admin
		if user.Role != domain.RoleAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		principal.Role = user.Role // Refresh the role from the store
		SetPrincipal(c, principal) // Store refreshed principal
		c.Next()                   // If admin, proceed to the next handler
	}
}
