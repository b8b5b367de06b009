package models

// Status is the booking lifecycle state as defined by the upstream API.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// transitionMap holds the complete booking state machine. Terminal states
// (completed, cancelled, no_show) have no outgoing transitions; completed and
// cancelled bookings may only be deleted.
var transitionMap = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow},
}

func ValidTransition(from, to Status) bool {
	for _, status := range transitionMap[from] {
		if status == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given one. The
// result drives which action buttons a dashboard may offer.
func AllowedTransitions(from Status) []Status {
	allowed, ok := transitionMap[from]
	if !ok {
		return nil
	}
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// Deletable reports whether a booking in this status may be deleted.
func Deletable(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}
