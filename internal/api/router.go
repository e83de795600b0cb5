package api

import (
	"context"  // Health probe
	"net/http" // HTTP status codes

	"health_guardian/internal/middleware" // Auth, rate limit and request logging

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps is everything the HTTP surface needs
type Deps struct {
	Accounts      Accounts
	Donors        Donors
	Matcher       NearestFinder
	Alerts        Alerts
	Notifications Notifications
	Predictions   Predictions
	Gate          middleware.Verifier             // Bearer token verification
	Users         middleware.UserFinder           // Admin role re-check
	Limiter       *middleware.RateLimiter         // Login and emergency search limiter, optional
	UploadDir     string                          // Staging directory for prediction uploads
	Health        func(ctx context.Context) error // Readiness probe, optional
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()                                    // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger()) // Recover panics and log every request

	r.GET("/healthz", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.JWTAuthMiddleware(d.Gate)     // Any signed-in user
	admin := middleware.AdminOnlyMiddleware(d.Users) // Admin re-checked against the store
	limit := gin.HandlerFunc(func(c *gin.Context) {
		c.Next() // No limiter configured
	})
	if d.Limiter != nil {
		limit = d.Limiter.Middleware()
	}

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", limit, RegisterHandler(d.Accounts)) // Registration endpoint
	authGroup.POST("/login", limit, LoginHandler(d.Accounts))       // Login endpoint

	protected := r.Group("/api", auth)
	protected.GET("/user", ProfileHandler(d.Accounts))       // Own profile
	protected.PUT("/user", UpdateProfileHandler(d.Accounts)) // Update own profile

	// Donor routes
	protected.POST("/donors", RegisterDonorHandler(d.Donors))                          // Register or update donor profile
	protected.GET("/donors", ListDonorsHandler(d.Donors))                              // List donors
	protected.POST("/donors/nearest", limit, NearestDonorsHandler(d.Matcher))          // Emergency proximity search
	protected.GET("/donors/:id", GetDonorHandler(d.Donors))                            // Donor details
	protected.POST("/donors/:id/contact", admin, ContactDonorHandler(d.Notifications)) // Contact a donor

	// Prediction and alert routes
	protected.POST("/predictions", admin, UploadPredictionsHandler(d.Predictions, d.UploadDir)) // Run the model on an upload
	protected.GET("/diseases", ListDiseasesHandler(d.Predictions))                              // Stored predictions
	protected.POST("/alerts", admin, CreateAlertHandler(d.Alerts))                              // Raise an alert
	protected.GET("/alerts", ListAlertsHandler(d.Alerts))                                       // List alerts
	protected.PATCH("/alerts/:id", admin, SetAlertStatusHandler(d.Alerts))                      // Toggle an alert

	// Notification routes
	protected.GET("/notifications", ListNotificationsHandler(d.Notifications))        // Own notifications
	protected.GET("/notifications/unread-count", UnreadCountHandler(d.Notifications)) // Unread badge
	protected.PATCH("/notifications/:id", MarkReadHandler(d.Notifications))           // Mark one read

	// Admin routes
	protected.GET("/admin/users", admin, ListUsersHandler(d.Accounts)) // List users endpoint

	return r
}
