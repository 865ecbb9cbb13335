package auth

import (
	"sync"
	"time"
)

// Session is one live login. Tokens outliving their session are rejected, so
// logout and TTL expiry both revoke immediately.
type Session struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	ClientID  uint      `json:"client_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore tracks issued sessions. Implementations must be safe for
// concurrent use.
type SessionStore interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// MemorySessionStore is an in-process session store with lazy TTL eviction:
// expired sessions are purged on read and whenever a new session lands.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

// Put stores a session and sweeps anything already expired.
func (s *MemorySessionStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, existing := range s.sessions {
		if now.After(existing.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.ID] = session
}

// Get returns a live session. An expired session is evicted and reported as
// absent.
func (s *MemorySessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return session, true
}

// Delete removes a session regardless of expiry.
func (s *MemorySessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
