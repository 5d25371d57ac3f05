// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/modules/itinerary"
	"wayfarer/internal/modules/location"
	"wayfarer/internal/modules/quota"
	"wayfarer/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps planning and storage errors to a status code. Client
// errors echo the message; server errors do not.
func writePlanError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, location.ErrInsufficientData):
		writeError(c, http.StatusUnprocessableEntity, "not enough locations to plan a route for this destination")
	case errors.Is(err, location.ErrUnknownRegion):
		writeError(c, http.StatusUnprocessableEntity, "unknown destination")
	case errors.Is(err, quota.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, itinerary.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "planning timed out")
	case errors.Is(err, service.ErrCollaborator):
		writeError(c, http.StatusBadGateway, "upstream planning service failed")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
