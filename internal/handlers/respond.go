package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movepal/api/internal/middleware"
	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/services"
	"github.com/movepal/api/internal/session"
	"github.com/movepal/api/internal/upstream"
)

// respondError converts a service or upstream error into the right JSON
// response. A 401 from the booking API is fatal for the session: credentials
// are cleared and the caller is redirected through login.
func respondError(c *gin.Context, sessions *session.Store, err error) {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		middleware.Unauthorized(c, sessions, "session expired")
	case errors.Is(err, services.ErrStaffConflict),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNotDeletable):
		c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrNotEligible):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	default:
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, models.ErrorResponse(apiErr.Detail))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(err.Error()))
	}
}

func isUpstreamError(err error) bool {
	var apiErr *upstream.APIError
	return errors.Is(err, upstream.ErrUnauthorized) || errors.As(err, &apiErr)
}
