package models

const (
	UserTypeCustomer = "customer"
	UserTypeStaff    = "staff"
	UserTypeAdmin    = "admin"

	StaffStatusActive   = "Active"
	StaffStatusInactive = "Inactive"
)

type Staff struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
	UserType string `json:"user_type"`
	Status   string `json:"status"`
}

// Assignable reports whether this roster entry may hold booking assignments
// at all. Customers never do.
func (s *Staff) Assignable() bool {
	return s.UserType == UserTypeStaff || s.UserType == UserTypeAdmin
}
