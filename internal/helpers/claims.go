package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims issued by the booking platform's auth service.
type Claims struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.UserType == "admin"
}

func (c *Claims) IsStaff() bool {
	return c.UserType == "staff"
}

func (c *Claims) IsCustomer() bool {
	return c.UserType == "customer"
}

func (c *Claims) HasUserType(userType string) bool {
	return c.UserType == userType
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim never expire here; the upstream API remains the authority.
func (c *Claims) Expired() bool {
	return c.ExpiresAt != nil && time.Now().After(c.ExpiresAt.Time)
}
