package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/services"
	"github.com/movepal/api/internal/session"
)

// bookingView decorates a booking with the actions valid from its current
// status, so dashboards offer exactly the right buttons.
type bookingView struct {
	models.Booking
	AllowedTransitions []models.Status `json:"allowed_transitions"`
	Deletable          bool            `json:"deletable"`
}

func newBookingView(b models.Booking) bookingView {
	return bookingView{
		Booking:            b,
		AllowedTransitions: models.AllowedTransitions(b.Status),
		Deletable:          models.Deletable(b.Status),
	}
}

// ListBookings loads the enriched booking list and applies the optional
// status/date/search filters in memory.
func ListBookings(svc *services.BookingService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("token")

		bookings, err := svc.LoadBookings(c.Request.Context(), token)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		filter := services.BookingFilter{
			Status:   models.Status(c.Query("status")),
			DateFrom: c.Query("date_from"),
			DateTo:   c.Query("date_to"),
			Search:   c.Query("search"),
		}
		if filter.Status != "" && !models.KnownStatus(filter.Status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("unknown status filter"))
			return
		}

		filtered := services.ApplyFilters(bookings, filter)
		views := make([]bookingView, 0, len(filtered))
		for _, b := range filtered {
			views = append(views, newBookingView(b))
		}

		c.JSON(http.StatusOK, models.ListResponse(views, len(views)))
	}
}

type statusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// UpdateBookingStatus applies one transition of the booking state machine.
func UpdateBookingStatus(svc *services.BookingService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID"))
			return
		}

		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := svc.SetStatus(c.Request.Context(), c.GetString("token"), id, req.Status)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(newBookingView(*booking), "booking status updated"))
	}
}

// DeleteBooking removes a completed or cancelled booking. The confirm query
// parameter stands in for the interactive confirmation the dashboards show.
func DeleteBooking(svc *services.BookingService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID"))
			return
		}

		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("deletion requires confirm=true"))
			return
		}

		if err := svc.DeleteBooking(c.Request.Context(), c.GetString("token"), id); err != nil {
			respondError(c, sessions, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "booking deleted"))
	}
}

// CreateBooking validates a customer booking request, including the
// category-conditional fields, and submits it upstream.
func CreateBooking(svc *services.IntakeService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := svc.Submit(c.Request.Context(), c.GetString("token"), &req)
		if err != nil {
			if isUpstreamError(err) {
				respondError(c, sessions, err)
				return
			}
			// Everything else is a validation failure.
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(newBookingView(*booking), "booking created"))
	}
}
