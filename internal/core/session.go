package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore holds one loaded table per session, keyed by a generated ID.
// Each session is independent: concurrent lookups on different sessions
// share nothing, and a session's table is replaced wholesale rather than
// mutated. Sessions expire after a period of inactivity and are reaped by a
// background sweep.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session

	ttl  time.Duration
	max  int
	done chan struct{}
}

type session struct {
	table    Table
	name     string // source file name, for error context
	expires  time.Time
	loadedAt time.Time
}

// NewSessionStore creates a store whose sessions expire ttl after their
// last use. max bounds the number of live sessions; 0 means unbounded.
// The background sweep runs every sweepInterval until Close is called.
func NewSessionStore(ttl, sweepInterval time.Duration, max int) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      max,
		done:     make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

// Put stores a table under a fresh session ID and returns the ID.
// name is the source file name (or a label like "example"), kept for
// error reporting.
func (s *SessionStore) Put(t Table, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.max > 0 && len(s.sessions) >= s.max {
		s.expireLocked(time.Now())
		if len(s.sessions) >= s.max {
			return "", ErrTooManySessions
		}
	}

	id := uuid.NewString()
	now := time.Now()
	s.sessions[id] = &session{
		table:    t,
		name:     name,
		expires:  now.Add(s.ttl),
		loadedAt: now,
	}
	return id, nil
}

// Get returns the table for a session and slides its expiry forward.
// Returns ErrSessionNotFound for unknown or expired IDs.
func (s *SessionStore) Get(id string) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || time.Now().After(sess.expires) {
		delete(s.sessions, id)
		return Table{}, ErrSessionNotFound
	}
	sess.expires = time.Now().Add(s.ttl)
	return sess.table, nil
}

// Name returns the source name recorded for a session, or "" if unknown.
func (s *SessionStore) Name(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.name
	}
	return ""
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweep. The store remains usable; expired
// sessions are then only reclaimed lazily on access.
func (s *SessionStore) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// sweep removes expired sessions on a fixed interval.
func (s *SessionStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.expireLocked(now)
			s.mu.Unlock()
		}
	}
}

// expireLocked drops sessions past their deadline. Caller holds mu.
func (s *SessionStore) expireLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.After(sess.expires) {
			delete(s.sessions, id)
		}
	}
}
