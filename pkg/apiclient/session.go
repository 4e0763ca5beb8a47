package apiclient

import "sync"

// Session holds the bearer token shared by every request of a Client.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *Author

	// generation changes on every Login and teardown. Requests remember the
	// generation they were sent under.
	generation uint64
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Login(token string, user *Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.generation++
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *Author {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) current() (string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.generation
}

// teardown clears the session after a 401 on a request sent under
// generation. Only the first 401 of a generation tears down, so concurrent
// in-flight 401s collapse into one.
func (s *Session) teardown(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return false
	}
	s.generation++
	s.token = ""
	s.user = nil
	return true
}
