package api

import (
	"net/http" // HTTP status codes

	"health_guardian/internal/domain"     // Importing domain models
	"health_guardian/internal/middleware" // Principal lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListNotificationsHandler returns the caller's notifications newest first
func ListNotificationsHandler(notifications Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := notifications.List(c.Request.Context(), middleware.PrincipalFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.NotificationView{} // Always return an array
		}
		c.JSON(http.StatusOK, gin.H{"notifications": list})
	}
}

// UnreadCountHandler returns how many of the caller's notifications are unread
func UnreadCountHandler(notifications Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := notifications.UnreadCount(c.Request.Context(), middleware.PrincipalFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"unread": count})
	}
}

// MarkReadHandler marks one of the caller's notifications read
func MarkReadHandler(notifications Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		// Someone else's notification is silently left alone
		if err := notifications.MarkRead(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
	}
}
