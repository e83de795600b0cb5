package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"health_guardian/internal/middleware" // Principal lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns all users with their donor status
func ListUsersHandler(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		result, err := accounts.ListUsers(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result) // Cached pages carry cached=true
	}
}
