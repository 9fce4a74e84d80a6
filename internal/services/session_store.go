package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"visit-schedule-service/internal/domain"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionStore keeps planning sessions in memory. Each session is guarded by
// its own lock; sessions never share mutable state.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*sessionEntry{}}
}

// Create registers a new session and returns a snapshot of it.
func (s *SessionStore) Create(trip domain.TripParameters, origins []string, now time.Time) domain.Session {
	sess := domain.NewSession(uuid.NewString(), trip, origins, now)

	s.mu.Lock()
	s.sessions[sess.ID] = &sessionEntry{session: sess}
	s.mu.Unlock()

	return sess.Snapshot()
}

// Get returns a snapshot of the session.
func (s *SessionStore) Get(id string) (domain.Session, error) {
	var out domain.Session
	err := s.Update(id, func(sess *domain.Session) error {
		out = sess.Snapshot()
		return nil
	})
	return out, err
}

// Update applies fn to the session under its lock. If fn fails the error is
// returned unchanged; fn is responsible for leaving the session consistent.
func (s *SessionStore) Update(id string, fn func(sess *domain.Session) error) error {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: session %q", domain.ErrNotFound, id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Discard removes the session.
func (s *SessionStore) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: session %q", domain.ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
