package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/upstream"
)

// BookingRequest is a customer booking submission. Category-specific fields
// are optional at the struct level and enforced by ValidateRequest depending
// on the service category.
type BookingRequest struct {
	ServiceID           int    `json:"service" validate:"required"`
	ServiceCategory     string `json:"service_category" validate:"required,oneof=moving cleaning events"`
	ScheduledDate       string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime       string `json:"scheduled_time" validate:"required"`
	Address             string `json:"address" validate:"required"`
	City                string `json:"city" validate:"required"`
	PostalCode          string `json:"postal_code" validate:"required"`
	PickupAddress       string `json:"pickup_address,omitempty"`
	DropoffAddress      string `json:"dropoff_address,omitempty"`
	PropertySizeSqm     int    `json:"property_size_sqm,omitempty"`
	GuestCount          int    `json:"guest_count,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

var postalCodePattern = regexp.MustCompile(`^[0-9]{4,6}$`)

type IntakeService struct {
	client *upstream.Client
	logger *slog.Logger
}

func NewIntakeService(client *upstream.Client, logger *slog.Logger) *IntakeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntakeService{
		client: client,
		logger: logger,
	}
}

// ValidateRequest applies the shared rules plus the conditional per-category
// ones. The server validates again; this is a first line, not the authority.
func (is *IntakeService) ValidateRequest(req *BookingRequest) error {
	if err := models.Validate.Struct(req); err != nil {
		return fmt.Errorf("invalid booking request: %v", err)
	}

	if !postalCodePattern.MatchString(req.PostalCode) {
		return fmt.Errorf("invalid postal code %q", req.PostalCode)
	}

	if req.ScheduledDate < time.Now().Format("2006-01-02") {
		return fmt.Errorf("scheduled date %s is in the past", req.ScheduledDate)
	}

	switch req.ServiceCategory {
	case "moving":
		if req.PickupAddress == "" || req.DropoffAddress == "" {
			return fmt.Errorf("moving bookings require pickup and dropoff addresses")
		}
	case "cleaning":
		if req.PropertySizeSqm <= 0 {
			return fmt.Errorf("cleaning bookings require the property size")
		}
	case "events":
		if req.GuestCount <= 0 {
			return fmt.Errorf("event bookings require the guest count")
		}
	}

	return nil
}

// Submit validates the request and creates the booking upstream. The created
// booking comes straight from the server response.
func (is *IntakeService) Submit(ctx context.Context, token string, req *BookingRequest) (*models.Booking, error) {
	if err := is.ValidateRequest(req); err != nil {
		return nil, err
	}

	booking, err := is.client.CreateBooking(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	is.logger.Info("booking created",
		"booking_id", booking.ID,
		"category", req.ServiceCategory,
		"date", req.ScheduledDate,
	)
	return booking, nil
}
