// Package session holds the bearer token issued by the backend.
package session

import "sync"

// Session is the single token cell shared by the auth flows (writers) and
// every authenticated request (readers). The zero value is an empty,
// unauthenticated session ready for use.
type Session struct {
	mu    sync.RWMutex
	token string
}

func New() *Session {
	return &Session{}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the current token. An empty token leaves the session
// unauthenticated.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// BearerHeader returns the Authorization header value for the current token.
func (s *Session) BearerHeader() string {
	return "Bearer " + s.Token()
}
