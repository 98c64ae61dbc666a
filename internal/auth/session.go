package auth

import (
	"sync"

	"github.com/skyops/aeroops-be/internal/models"
)

// Session is the per-connection record of which user, if any, is currently
// authenticated. Each request context carries its own Session; there is no
// process-wide current user, so concurrent requests cannot cross-contaminate.
type Session struct {
	mu            sync.RWMutex
	user          *models.User
	authenticated bool
}

// NewSession returns an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// Establish marks the session authenticated as the given user.
func (s *Session) Establish(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.authenticated = true
}

// Terminate clears the authenticated identity.
func (s *Session) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
}

// Current returns the authenticated user, or false when the session is
// anonymous.
func (s *Session) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated || s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}
