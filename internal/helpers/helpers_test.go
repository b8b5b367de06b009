package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateTokenUnverifiedPath(t *testing.T) {
	tokenStr := signedToken(t, &Claims{
		Email:    "ops@movepal.test",
		UserType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateToken(tokenStr, "")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Email != "ops@movepal.test" || !claims.IsAdmin() {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	tokenStr := signedToken(t, &Claims{
		UserType: "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ValidateToken(tokenStr, ""); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-jwt", ""); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestLoginRedirect(t *testing.T) {
	got := LoginRedirect("/admin/bookings")
	want := "/login?redirect=%2Fadmin%2Fbookings"
	if got != want {
		t.Fatalf("LoginRedirect=%q, want %q", got, want)
	}
}

func TestUserTypePredicates(t *testing.T) {
	admin := &Claims{UserType: "admin"}
	if !admin.IsAdmin() || admin.IsStaff() || admin.IsCustomer() {
		t.Fatal("admin predicates wrong")
	}
	staff := &Claims{UserType: "staff"}
	if !staff.IsStaff() || !staff.HasUserType("staff") {
		t.Fatal("staff predicates wrong")
	}
}
