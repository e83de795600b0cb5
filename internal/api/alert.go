package api

import (
	"net/http" // HTTP status codes

	"health_guardian/internal/domain"     // Importing domain models
	"health_guardian/internal/middleware" // Principal lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// AlertRequest is an admin's new alert
type AlertRequest struct {
	Title     string `json:"title" binding:"required"`     // Alert title
	Message   string `json:"message" binding:"required"`   // Alert body
	DiseaseID uint   `json:"diseaseId" binding:"required"` // Referenced disease
	Severity  string `json:"severity" binding:"required"`  // low, medium or high
}

// AlertStatusRequest toggles an alert
type AlertStatusRequest struct {
	Active *bool `json:"active" binding:"required"` // New active flag
}

// CreateAlertHandler stores an alert and notifies every standard user
func CreateAlertHandler(alerts Alerts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AlertRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Title, message, disease ID and severity are required")
			return
		}
		created, err := alerts.CreateAlert(c.Request.Context(), middleware.PrincipalFrom(c), domain.AlertInput{
			Title:     req.Title,
			Message:   req.Message,
			DiseaseID: req.DiseaseID,
			Severity:  req.Severity,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Alert created successfully",
			"alertId":     created.Alert.ID,
			"fanout":      created.Fanout,      // Delivery report
			"fanoutError": created.FanoutError, // Set when recipients could not be read
		})
	}
}

// ListAlertsHandler returns every alert newest first
func ListAlertsHandler(alerts Alerts) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := alerts.ListAlerts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.AlertView{} // Always return an array
		}
		c.JSON(http.StatusOK, gin.H{"alerts": list})
	}
}

// SetAlertStatusHandler activates or deactivates an alert
func SetAlertStatusHandler(alerts Alerts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		var req AlertStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Active status is required")
			return
		}
		if err := alerts.SetActive(c.Request.Context(), middleware.PrincipalFrom(c), id, *req.Active); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Alert updated successfully"})
	}
}
