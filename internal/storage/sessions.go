package storage

import "sync"

// SessionStore provides in-memory storage for live study sessions keyed by
// session ID. All state belongs to a single session instance; the store
// only guards the map itself.
type SessionStore[T any] struct {
	mu       sync.RWMutex
	sessions map[string]T
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore[T any]() *SessionStore[T] {
	return &SessionStore[T]{
		sessions: make(map[string]T),
	}
}

// Store saves a session under its ID.
func (s *SessionStore[T]) Store(id string, session T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
}

// Get retrieves the session with the given ID.
func (s *SessionStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes the session with the given ID.
func (s *SessionStore[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Range calls f for every stored session and removes those for which f
// returns true. Used by the session reaper.
func (s *SessionStore[T]) Range(f func(id string, session T) (remove bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if f(id, session) {
			delete(s.sessions, id)
		}
	}
}

// Len returns the number of stored sessions.
func (s *SessionStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
