package models

// Booking mirrors the upstream booking API representation. The gateway never
// owns or persists bookings; it reads them, proposes mutations and re-fetches
// to reconcile.
type Booking struct {
	ID                  int     `json:"id"`
	Code                string  `json:"booking_id"`
	CustomerID          int     `json:"customer"`
	CustomerName        string  `json:"customer_name"`
	ServiceID           int     `json:"service"`
	ServiceName         string  `json:"service_name"`
	ServiceCategory     string  `json:"service_category"`
	ScheduledDate       string  `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime       string  `json:"scheduled_time"`
	Status              Status  `json:"status"`
	TotalAmount         float64 `json:"total_amount"`
	Address             string  `json:"address"`
	City                string  `json:"city"`
	PostalCode          string  `json:"postal_code"`
	PickupAddress       string  `json:"pickup_address,omitempty"`
	DropoffAddress      string  `json:"dropoff_address,omitempty"`
	SpecialInstructions string  `json:"special_instructions"`
	// Assignments are denormalized onto the booking for display. They are
	// populated from a separate upstream call, not the booking payload itself.
	Assignments []Assignment `json:"assignments"`
}

// AssignedStaffIDs returns the ids of staff currently assigned to the booking.
func (b *Booking) AssignedStaffIDs() []int {
	ids := make([]int, 0, len(b.Assignments))
	for _, a := range b.Assignments {
		ids = append(ids, a.StaffID)
	}
	return ids
}

type Assignment struct {
	ID        int    `json:"id"`
	BookingID int    `json:"booking"`
	StaffID   int    `json:"staff"`
	StaffName string `json:"staff_name"`
	Role      string `json:"role"`
}

// DefaultAssignmentRole is applied when an assignment is created without an
// explicit role.
const DefaultAssignmentRole = "crew"

// Leave marks a day a staff member is unavailable. The upstream API returns
// either "date" or "start_date" depending on the leave type.
type Leave struct {
	ID        int    `json:"id"`
	StaffID   int    `json:"staff"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
}

// EffectiveDate returns whichever of the two date fields is populated.
func (l *Leave) EffectiveDate() string {
	if l.Date != "" {
		return l.Date
	}
	return l.StartDate
}
