package api

import (
	"net/http" // HTTP status codes

	"health_guardian/internal/middleware" // Principal lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for profile updates
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`  // New display name
	Email string `json:"email" binding:"required"` // New email
}

// RegisterHandler creates a standard user and returns a token
func RegisterHandler(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		session, err := accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Validation or duplicate email
			return
		}
		c.JSON(http.StatusCreated, session) // Return token and profile
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		session, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Invalid credentials
			return
		}
		c.JSON(http.StatusOK, session) // Return the token in the response
	}
}

// ProfileHandler returns the caller's own profile
func ProfileHandler(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := accounts.Profile(c.Request.Context(), middleware.PrincipalFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfileHandler changes the caller's name and email
func UpdateProfileHandler(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		profile, err := accounts.UpdateProfile(c.Request.Context(), middleware.PrincipalFrom(c), req.Name, req.Email)
		if err != nil {
			respondError(c, err) // Validation or email taken
			return
		}
		c.JSON(http.StatusOK, profile) // Return the updated profile
	}
}
