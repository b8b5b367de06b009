package services

import "errors"

var (
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotDeletable      = errors.New("only completed or cancelled bookings can be deleted")
	ErrStaffConflict     = errors.New("staff conflict")
	ErrNotEligible       = errors.New("staff member is not eligible for this booking")
	ErrBookingNotFound   = errors.New("booking not found")
)
