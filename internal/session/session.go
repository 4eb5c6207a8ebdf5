package session

import "sync"

// Session holds the authenticated dealer identity for the lifetime of the
// process. It is injected explicitly into the components that need it;
// nothing reads ambient global auth state. Clear tears the session down on
// logout or when the server answers 401.
type Session struct {
	mu         sync.RWMutex
	token      string
	dealerName string
	active     bool
}

// New creates an active session with the given bearer token.
func New(token, dealerName string) *Session {
	return &Session{
		token:      token,
		dealerName: dealerName,
		active:     true,
	}
}

// Token returns the bearer token, or "" once the session is cleared.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return ""
	}
	return s.token
}

// DealerName returns the dealer the session belongs to.
func (s *Session) DealerName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dealerName
}

// Active reports whether the session is still usable.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Clear invalidates the session. Subsequent Token calls return "".
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.token = ""
}
