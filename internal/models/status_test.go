package models

import "testing"

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from  Status
		to    Status
		valid bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelled, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},
		{Status("unknown"), StatusConfirmed, false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestAllowedTransitionsMatchesMachine(t *testing.T) {
	cases := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusConfirmed, StatusCancelled}},
		{StatusConfirmed, []Status{StatusCompleted, StatusNoShow}},
		{StatusCompleted, nil},
		{StatusCancelled, nil},
		{StatusNoShow, nil},
	}

	for _, tt := range cases {
		got := AllowedTransitions(tt.from)
		if len(got) != len(tt.want) {
			t.Fatalf("AllowedTransitions(%q)=%v, want %v", tt.from, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("AllowedTransitions(%q)=%v, want %v", tt.from, got, tt.want)
			}
		}
	}
}

func TestDeletable(t *testing.T) {
	deletable := map[Status]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusCompleted: true,
		StatusCancelled: true,
		StatusNoShow:    false,
	}
	for status, want := range deletable {
		if got := Deletable(status); got != want {
			t.Fatalf("Deletable(%q)=%v, want %v", status, got, want)
		}
	}
}
