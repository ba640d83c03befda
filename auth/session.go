package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// sweepInterval is how often the janitor goroutine removes expired sessions.
const sweepInterval = time.Minute

// Session is a single authenticated browser session.
type Session struct {
	Token     string
	Principal Principal
	ExpiresAt time.Time
}

// SessionStore keeps sessions in memory, keyed by an unguessable token that
// travels in the session cookie. Expired sessions are rejected on lookup and
// swept periodically by a background goroutine so the map does not grow
// without bound.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewSessionStore creates a session store with the given session lifetime and
// starts its sweeper goroutine. Close stops the sweeper.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

// Create issues a new session for the principal and returns it.
func (s *SessionStore) Create(p Principal) (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := Session{
		Token:     token,
		Principal: p,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return &session, nil
}

// Get resolves a token to its principal. Expired or unknown tokens fail; an
// expired session found here is removed immediately rather than waiting for
// the sweeper.
func (s *SessionStore) Get(token string) (*Principal, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		s.Destroy(token)
		return nil, false
	}

	p := session.Principal
	return &p, true
}

// Destroy invalidates a session. Destroying an unknown token is a no-op.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Count returns the number of live sessions, expired ones included until the
// next sweep.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close signals the sweeper goroutine to stop and waits for it to finish.
func (s *SessionStore) Close() {
	close(s.stop)
	<-s.done
}

// run is the sweeper loop. It exits when the stop channel is closed.
func (s *SessionStore) run() {
	defer close(s.done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep removes every expired session.
func (s *SessionStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// newToken returns 32 bytes of cryptographic randomness, hex encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
