package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/upstream"
)

// Editor stages a staff selection for one booking and persists it as a whole.
// It never mutates local state optimistically: the booking's assignment list
// changes only after a confirmed server round trip followed by a re-fetch of
// the authoritative list.
type Editor struct {
	svc       *AssignmentService
	booking   models.Booking
	eligible  map[int]struct{}
	conflicts map[int]struct{}
	selected  map[int]struct{}
}

// NewEditor opens an editing session for the target booking. Staff currently
// assigned to the booking start out selected.
func (as *AssignmentService) NewEditor(target models.Booking, eligibility *Eligibility) *Editor {
	e := &Editor{
		svc:       as,
		booking:   target,
		eligible:  make(map[int]struct{}, len(eligibility.Staff)),
		conflicts: eligibility.Conflicts,
		selected:  make(map[int]struct{}, len(target.Assignments)),
	}
	if e.conflicts == nil {
		e.conflicts = make(map[int]struct{})
	}
	for _, s := range eligibility.Staff {
		e.eligible[s.ID] = struct{}{}
	}
	for _, id := range target.AssignedStaffIDs() {
		e.selected[id] = struct{}{}
	}
	return e
}

// Toggle adds or removes a staff id from the pending selection. Deselecting
// is always allowed; selecting a conflicted or ineligible staff member is
// rejected with an error, never silently.
func (e *Editor) Toggle(staffID int) error {
	if _, ok := e.selected[staffID]; ok {
		delete(e.selected, staffID)
		return nil
	}
	if _, ok := e.conflicts[staffID]; ok {
		return fmt.Errorf("%w: staff %d is already assigned to another booking at this time", ErrStaffConflict, staffID)
	}
	if _, ok := e.eligible[staffID]; !ok {
		return fmt.Errorf("%w: staff %d", ErrNotEligible, staffID)
	}
	e.selected[staffID] = struct{}{}
	return nil
}

// Selected returns the staged staff ids in ascending order.
func (e *Editor) Selected() []int {
	ids := make([]int, 0, len(e.selected))
	for id := range e.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (e *Editor) IsSelected(staffID int) bool {
	_, ok := e.selected[staffID]
	return ok
}

// Booking returns the booking as the editor currently sees it, including any
// reconciled assignments.
func (e *Editor) Booking() models.Booking {
	return e.booking
}

// Save persists the full staged selection. If any selected staff member is
// still conflicted, the save aborts before any network call is made.
func (e *Editor) Save(ctx context.Context, token string) ([]models.Assignment, error) {
	for id := range e.selected {
		if _, ok := e.conflicts[id]; ok {
			return nil, fmt.Errorf("%w: staff %d is already assigned to another booking on the same day", ErrStaffConflict, id)
		}
	}

	requests := make([]upstream.AssignmentRequest, 0, len(e.selected))
	for _, id := range e.Selected() {
		requests = append(requests, upstream.AssignmentRequest{
			Staff: id,
			Role:  models.DefaultAssignmentRole,
		})
	}

	if err := e.svc.client.AssignStaff(ctx, token, e.booking.ID, requests); err != nil {
		return nil, err
	}

	return e.reconcile(ctx, token)
}

// Remove deletes a single assignment and reconciles against the server.
func (e *Editor) Remove(ctx context.Context, token string, staffID int) ([]models.Assignment, error) {
	assignments, err := e.svc.Remove(ctx, token, e.booking.ID, staffID)
	if err != nil {
		return nil, err
	}
	e.apply(assignments)
	return assignments, nil
}

// reconcile re-fetches the authoritative assignment list and replaces both
// the booking's assignments and the staged selection with it.
func (e *Editor) reconcile(ctx context.Context, token string) ([]models.Assignment, error) {
	assignments, err := e.svc.client.ListAssignments(ctx, token, e.booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile assignments: %w", err)
	}
	e.apply(assignments)
	return assignments, nil
}

func (e *Editor) apply(assignments []models.Assignment) {
	e.booking.Assignments = assignments
	e.selected = make(map[int]struct{}, len(assignments))
	for _, a := range assignments {
		e.selected[a.StaffID] = struct{}{}
	}
}
