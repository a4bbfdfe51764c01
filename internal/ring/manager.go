package ring

import (
	"errors"
	"sync"
)

// ErrSessionActive is returned when opening a session while one is live.
var ErrSessionActive = errors.New("an alarm session is already active")

// Manager owns the single active-session slot. The trigger evaluator opens
// sessions through it and the UI reads the active one; a second trigger
// while a session is live is refused.
type Manager struct {
	mu     sync.Mutex
	active *Session
}

func NewManager() *Manager {
	return &Manager{}
}

// Open installs s as the active session. The session releases the slot
// itself when it closes.
func (m *Manager) Open(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return ErrSessionActive
	}
	m.active = s
	s.mu.Lock()
	s.onClose = func() { m.release(s) }
	s.mu.Unlock()
	return nil
}

// Active returns the live session, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) release(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == s {
		m.active = nil
	}
}
