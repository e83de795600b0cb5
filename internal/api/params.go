package api

import (
	"strconv" // String conversion

	"health_guardian/internal/domain" // Validation errors

	"github.com/gin-gonic/gin" // Gin web framework
)

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return uint(v), nil
}
