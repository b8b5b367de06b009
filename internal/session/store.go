package session

import "sync"

// Session mirrors the auth flags the browser client used to keep in local
// storage. It lives only for the lifetime of the gateway process.
type Session struct {
	Token         string
	Email         string
	UserType      string
	Authenticated bool
}

// Event describes an auth-state change. Cleared is true when the session was
// removed (logout or upstream 401).
type Event struct {
	SessionID string
	Session   Session
	Cleared   bool
}

// Store is an observable auth-state store. It replaces the old poll-every-
// second credential check: interested parties subscribe and get pushed each
// change instead.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	subs     map[int]chan Event
	nextSub  int
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]Session),
		subs:     make(map[int]chan Event),
	}
}

func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *Store) Set(id string, session Session) {
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	s.publish(Event{SessionID: id, Session: session})
}

// Clear removes a session. Clearing an unknown id is a no-op and publishes
// nothing.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if ok {
		s.publish(Event{SessionID: id, Cleared: true})
	}
}

// Subscribe registers for auth-state change events. The returned cancel
// function must be called to release the subscription; the channel is closed
// by it.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// publish delivers the event to every subscriber without blocking; a slow
// subscriber with a full buffer misses the event.
func (s *Store) publish(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
