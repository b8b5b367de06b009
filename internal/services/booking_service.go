package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/upstream"
)

type BookingService struct {
	client *upstream.Client
	logger *slog.Logger
}

func NewBookingService(client *upstream.Client, logger *slog.Logger) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		client: client,
		logger: logger,
	}
}

// LoadBookings fetches all bookings and enriches each with its current staff
// assignments. A 401 from any call propagates as upstream.ErrUnauthorized; a
// failed assignment fetch for one booking does not fail the whole load.
func (bs *BookingService) LoadBookings(ctx context.Context, token string) ([]models.Booking, error) {
	bookings, err := bs.client.ListBookings(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	for i := range bookings {
		assignments, err := bs.client.ListAssignments(ctx, token, bookings[i].ID)
		if err != nil {
			if errors.Is(err, upstream.ErrUnauthorized) {
				return nil, err
			}
			bs.logger.Warn("failed to load assignments for booking",
				"booking_id", bookings[i].ID,
				"error", err,
			)
			continue
		}
		bookings[i].Assignments = assignments
	}

	return bookings, nil
}

type BookingFilter struct {
	Status   models.Status
	DateFrom string // YYYY-MM-DD, inclusive
	DateTo   string // YYYY-MM-DD, inclusive
	Search   string
}

// ApplyFilters narrows an already-loaded booking list. Pure, no network.
// Search matches the booking code, customer and service names
// case-insensitively.
func ApplyFilters(bookings []models.Booking, filter BookingFilter) []models.Booking {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		// ISO dates compare correctly as strings.
		if filter.DateFrom != "" && b.ScheduledDate < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && b.ScheduledDate > filter.DateTo {
			continue
		}
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func matchesSearch(b models.Booking, search string) bool {
	for _, field := range []string{b.Code, b.CustomerName, b.ServiceName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// SetStatus applies one transition of the booking state machine. The
// transition is validated against the booking's current upstream status
// before the PATCH; the returned copy carries the new status only after the
// server confirmed it.
func (bs *BookingService) SetStatus(ctx context.Context, token string, id int, newStatus models.Status) (*models.Booking, error) {
	if !models.KnownStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}

	booking, err := bs.client.GetBooking(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if !models.ValidTransition(booking.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := bs.client.UpdateBookingStatus(ctx, token, id, newStatus); err != nil {
		return nil, err
	}

	booking.Status = newStatus
	return booking, nil
}

// DeleteBooking removes a booking. Only completed and cancelled bookings are
// deletable; everything else must go through a status transition first.
func (bs *BookingService) DeleteBooking(ctx context.Context, token string, id int) error {
	booking, err := bs.client.GetBooking(ctx, token, id)
	if err != nil {
		return fmt.Errorf("failed to load booking: %w", err)
	}

	if !models.Deletable(booking.Status) {
		return fmt.Errorf("%w: booking is %s", ErrNotDeletable, booking.Status)
	}

	return bs.client.DeleteBooking(ctx, token, id)
}
