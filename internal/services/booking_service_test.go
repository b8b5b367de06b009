package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movepal/api/internal/models"
	"github.com/movepal/api/internal/upstream"
)

func TestLoadBookingsEnrichesAssignments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"id":1,"booking_id":"BK-001"},{"id":2,"booking_id":"BK-002"}]}`))
	})
	mux.HandleFunc("/api/bookings/1/assignments/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Assignment{{ID: 10, BookingID: 1, StaffID: 7, Role: "crew"}})
	})
	mux.HandleFunc("/api/bookings/2/assignments/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(upstream.New(server.URL, server.Client(), nil), nil)
	bookings, err := svc.LoadBookings(context.Background(), "tok")
	if err != nil {
		t.Fatalf("LoadBookings failed: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	if len(bookings[0].Assignments) != 1 || bookings[0].Assignments[0].StaffID != 7 {
		t.Fatalf("booking 1 assignments not merged: %+v", bookings[0].Assignments)
	}
	if len(bookings[1].Assignments) != 0 {
		t.Fatalf("404 should mean no assignments, got %+v", bookings[1].Assignments)
	}
}

func TestLoadBookingsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewBookingService(upstream.New(server.URL, server.Client(), nil), nil)
	if _, err := svc.LoadBookings(context.Background(), "stale"); !errors.Is(err, upstream.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestApplyFilters(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, Code: "BK-001", CustomerName: "Ama Mensah", ServiceName: "Deep Clean", ScheduledDate: "2024-06-01", Status: models.StatusPending},
		{ID: 2, Code: "BK-002", CustomerName: "Kofi Boateng", ServiceName: "House Move", ScheduledDate: "2024-06-05", Status: models.StatusConfirmed},
		{ID: 3, Code: "BK-003", CustomerName: "Esi Owusu", ServiceName: "Event Setup", ScheduledDate: "2024-06-10", Status: models.StatusPending},
	}

	cases := []struct {
		name   string
		filter BookingFilter
		want   []int
	}{
		{"no filter", BookingFilter{}, []int{1, 2, 3}},
		{"by status", BookingFilter{Status: models.StatusPending}, []int{1, 3}},
		{"date from inclusive", BookingFilter{DateFrom: "2024-06-05"}, []int{2, 3}},
		{"date to inclusive", BookingFilter{DateTo: "2024-06-05"}, []int{1, 2}},
		{"date range", BookingFilter{DateFrom: "2024-06-02", DateTo: "2024-06-09"}, []int{2}},
		{"search code", BookingFilter{Search: "bk-002"}, []int{2}},
		{"search customer", BookingFilter{Search: "MENSAH"}, []int{1}},
		{"search service", BookingFilter{Search: "event"}, []int{3}},
		{"search no match", BookingFilter{Search: "plumbing"}, nil},
		{"combined", BookingFilter{Status: models.StatusPending, DateFrom: "2024-06-02"}, []int{3}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(bookings, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d bookings, want %d (%+v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Fatalf("position %d: got booking %d, want %d", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestSetStatusConfirmsPendingBooking(t *testing.T) {
	var patched map[string]models.Status
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings/1/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(models.Booking{ID: 1, Status: models.StatusPending})
		case http.MethodPatch:
			if err := json.NewDecoder(r.Body).Decode(&patched); err != nil {
				t.Errorf("bad PATCH body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(upstream.New(server.URL, server.Client(), nil), nil)
	booking, err := svc.SetStatus(context.Background(), "tok", 1, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if patched["status"] != models.StatusConfirmed {
		t.Fatalf("expected PATCH {status: confirmed}, got %+v", patched)
	}
	if booking.Status != models.StatusConfirmed {
		t.Fatalf("local status not updated, got %s", booking.Status)
	}

	// The next actions offered must now be complete / no-show.
	next := models.AllowedTransitions(booking.Status)
	if len(next) != 2 || next[0] != models.StatusCompleted || next[1] != models.StatusNoShow {
		t.Fatalf("unexpected follow-up transitions: %v", next)
	}
}

func TestSetStatusRejectsInvalidTransition(t *testing.T) {
	patches := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings/1/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(models.Booking{ID: 1, Status: models.StatusCompleted})
		case http.MethodPatch:
			patches++
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewBookingService(upstream.New(server.URL, server.Client(), nil), nil)
	if _, err := svc.SetStatus(context.Background(), "tok", 1, models.StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if patches != 0 {
		t.Fatalf("invalid transition must not reach the network, saw %d PATCHes", patches)
	}
}

func TestDeleteBookingOnlyTerminalStatuses(t *testing.T) {
	cases := []struct {
		status  models.Status
		allowed bool
	}{
		{models.StatusPending, false},
		{models.StatusConfirmed, false},
		{models.StatusNoShow, false},
		{models.StatusCompleted, true},
		{models.StatusCancelled, true},
	}

	for _, tt := range cases {
		deletes := 0
		mux := http.NewServeMux()
		mux.HandleFunc("/api/bookings/1/", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode(models.Booking{ID: 1, Status: tt.status})
			case http.MethodDelete:
				deletes++
				w.WriteHeader(http.StatusNoContent)
			}
		})
		server := httptest.NewServer(mux)

		svc := NewBookingService(upstream.New(server.URL, server.Client(), nil), nil)
		err := svc.DeleteBooking(context.Background(), "tok", 1)
		if tt.allowed {
			if err != nil {
				t.Errorf("status %s: expected delete to succeed, got %v", tt.status, err)
			}
			if deletes != 1 {
				t.Errorf("status %s: expected one DELETE, saw %d", tt.status, deletes)
			}
		} else {
			if !errors.Is(err, ErrNotDeletable) {
				t.Errorf("status %s: expected ErrNotDeletable, got %v", tt.status, err)
			}
			if deletes != 0 {
				t.Errorf("status %s: DELETE must not be issued, saw %d", tt.status, deletes)
			}
		}
		server.Close()
	}
}
