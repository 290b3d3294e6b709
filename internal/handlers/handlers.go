// internal/handlers/handlers.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/services"
	"github.com/podworks/pod-backend/internal/utils"
)

// respondServiceError maps service sentinel errors onto the HTTP error
// taxonomy. Unrecognized errors are logged and surface as 500s.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, services.ErrInvalidAction):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrKeywordNotFound), errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrProductNotReady):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrUpstream):
		utils.UpstreamErrorResponse(c, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(id), true
}
