package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/upstream"
)

type AssignmentService struct {
	client *upstream.Client
	logger *slog.Logger
}

func NewAssignmentService(client *upstream.Client, logger *slog.Logger) *AssignmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignmentService{
		client: client,
		logger: logger,
	}
}

// ComputeConflicts returns the ids of staff already assigned to any other
// booking sharing the target's scheduled date. Conflicted staff are warned
// about, not hidden; the set is also the save-time guard.
func ComputeConflicts(bookings []models.Booking, target models.Booking) map[int]struct{} {
	conflicts := make(map[int]struct{})
	if target.ScheduledDate == "" {
		return conflicts
	}
	for _, b := range bookings {
		if b.ID == target.ID || b.ScheduledDate != target.ScheduledDate {
			continue
		}
		for _, a := range b.Assignments {
			conflicts[a.StaffID] = struct{}{}
		}
	}
	return conflicts
}

// Eligibility is the staff pool offered for a booking: the assignable roster
// minus staff on leave that day, with same-day conflicts flagged separately.
type Eligibility struct {
	Staff     []models.Staff
	Conflicts map[int]struct{}
}

// Eligibility resolves who may be assigned to the target booking. The leave
// lookup is advisory: if it fails, no one is excluded and the caller gets the
// whole assignable roster without leave warnings.
func (as *AssignmentService) Eligibility(ctx context.Context, token string, bookings []models.Booking, target models.Booking) (*Eligibility, error) {
	roster, err := as.client.ListStaff(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff roster: %w", err)
	}

	onLeave := make(map[int]struct{})
	leaves, err := as.client.ListLeaves(ctx, token, target.ScheduledDate)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return nil, err
		}
		as.logger.Warn("leave lookup failed, availability check degraded",
			"date", target.ScheduledDate,
			"error", err,
		)
	} else {
		for _, l := range leaves {
			if l.EffectiveDate() == target.ScheduledDate {
				onLeave[l.StaffID] = struct{}{}
			}
		}
	}

	eligible := make([]models.Staff, 0, len(roster))
	for _, s := range roster {
		if !s.Assignable() {
			continue
		}
		if _, off := onLeave[s.ID]; off {
			continue
		}
		eligible = append(eligible, s)
	}

	return &Eligibility{
		Staff:     eligible,
		Conflicts: ComputeConflicts(bookings, target),
	}, nil
}

// Remove deletes one assignment and returns the re-fetched authoritative
// assignment list for the booking.
func (as *AssignmentService) Remove(ctx context.Context, token string, bookingID, staffID int) ([]models.Assignment, error) {
	if err := as.client.UnassignStaff(ctx, token, bookingID, staffID); err != nil {
		return nil, err
	}
	assignments, err := as.client.ListAssignments(ctx, token, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile assignments: %w", err)
	}
	return assignments, nil
}
