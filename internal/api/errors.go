package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"health_guardian/internal/domain" // Domain error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a domain error class onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrLocationRequired):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Internal details are logged, not returned.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		body["field"] = fe.Field // Name the offending field
	}
	switch status {
	case http.StatusInternalServerError:
		logrus.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Request failed")
		body["error"] = "Internal server error"
	case http.StatusBadGateway:
		logrus.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Upstream failure")
	}
	c.JSON(status, body)
}

// badRequest reports an unparseable request body or parameter
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
