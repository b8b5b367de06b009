package session

import "testing"

func TestSetGetClear(t *testing.T) {
	store := NewStore()

	store.Set("sid-1", Session{Token: "tok", Email: "a@b.c", UserType: "admin", Authenticated: true})

	got, ok := store.Get("sid-1")
	if !ok || got.Token != "tok" || !got.Authenticated {
		t.Fatalf("unexpected session: %+v ok=%v", got, ok)
	}

	store.Clear("sid-1")
	if _, ok := store.Get("sid-1"); ok {
		t.Fatal("session should be gone after Clear")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	store := NewStore()
	events, cancel := store.Subscribe()
	defer cancel()

	store.Set("sid-1", Session{Email: "a@b.c", Authenticated: true})
	store.Clear("sid-1")

	ev := <-events
	if ev.SessionID != "sid-1" || ev.Cleared || ev.Session.Email != "a@b.c" {
		t.Fatalf("unexpected set event: %+v", ev)
	}
	ev = <-events
	if ev.SessionID != "sid-1" || !ev.Cleared {
		t.Fatalf("unexpected clear event: %+v", ev)
	}
}

func TestClearUnknownPublishesNothing(t *testing.T) {
	store := NewStore()
	events, cancel := store.Subscribe()
	defer cancel()

	store.Clear("nope")

	select {
	case ev := <-events:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	store := NewStore()
	events, cancel := store.Subscribe()
	cancel()

	// Publishing after cancel must not panic or deliver.
	store.Set("sid-2", Session{Authenticated: true})

	if _, open := <-events; open {
		t.Fatal("channel should be closed after cancel")
	}
}
