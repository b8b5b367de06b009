package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/services"
	"github.com/movepal/api/internal/session"
)

// loadTarget fetches the current booking snapshot and picks the target out of
// it. The full snapshot is needed for cross-booking conflict detection.
func loadTarget(c *gin.Context, bookingSvc *services.BookingService) ([]models.Booking, *models.Booking, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, nil, services.ErrBookingNotFound
	}

	bookings, err := bookingSvc.LoadBookings(c.Request.Context(), c.GetString("token"))
	if err != nil {
		return nil, nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return bookings, &bookings[i], nil
		}
	}
	return nil, nil, services.ErrBookingNotFound
}

func sortedConflicts(conflicts map[int]struct{}) []int {
	ids := make([]int, 0, len(conflicts))
	for id := range conflicts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// EligibleStaff returns the staff pool for a booking's date together with the
// same-day conflict warnings.
func EligibleStaff(bookingSvc *services.BookingService, assignSvc *services.AssignmentService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, target, err := loadTarget(c, bookingSvc)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		eligibility, err := assignSvc.Eligibility(c.Request.Context(), c.GetString("token"), bookings, *target)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"staff":     eligibility.Staff,
			"conflicts": sortedConflicts(eligibility.Conflicts),
		}, ""))
	}
}

type assignRequest struct {
	StaffIDs []int `json:"staff_ids" binding:"required"`
}

// AssignStaff replaces a booking's assignment set with the requested one.
// The selection goes through the editor so every guard (eligibility, same-day
// conflicts) applies before anything reaches the booking API.
func AssignStaff(bookingSvc *services.BookingService, assignSvc *services.AssignmentService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		bookings, target, err := loadTarget(c, bookingSvc)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		eligibility, err := assignSvc.Eligibility(c.Request.Context(), c.GetString("token"), bookings, *target)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		editor := assignSvc.NewEditor(*target, eligibility)
		desired := make(map[int]struct{}, len(req.StaffIDs))
		for _, id := range req.StaffIDs {
			desired[id] = struct{}{}
		}
		for _, id := range editor.Selected() {
			if _, keep := desired[id]; !keep {
				if err := editor.Toggle(id); err != nil {
					respondError(c, sessions, err)
					return
				}
			}
		}
		for _, id := range req.StaffIDs {
			if editor.IsSelected(id) {
				continue
			}
			if err := editor.Toggle(id); err != nil {
				respondError(c, sessions, err)
				return
			}
		}

		assignments, err := editor.Save(c.Request.Context(), c.GetString("token"))
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(assignments, "assignments saved"))
	}
}

// UnassignStaff removes a single staff assignment from a booking and returns
// the reconciled assignment list.
func UnassignStaff(assignSvc *services.AssignmentService, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID"))
			return
		}
		staffID, err := strconv.Atoi(c.Param("staff_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid staff ID"))
			return
		}

		assignments, err := assignSvc.Remove(c.Request.Context(), c.GetString("token"), bookingID, staffID)
		if err != nil {
			respondError(c, sessions, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(assignments, "assignment removed"))
	}
}
