package session

import (
	"sync"

	"github.com/lintang-b-s/places-heatmap/pkg"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Factory builds the session with the given id.
type Factory func(id string) (*Session, error)

// Manager keeps independent sessions apart, keyed by a random id.
type Manager struct {
	log     *zap.Logger
	factory Factory
	onClose func(id string) error

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager returns a manager creating sessions with factory. onClose (may be nil) runs after a session has
// been closed, to drop whatever the renderer stored for it.
func NewManager(factory Factory, onClose func(id string) error, log *zap.Logger) *Manager {
	return &Manager{
		log:      log,
		factory:  factory,
		onClose:  onClose,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, pkg.WrapErrorf(nil, pkg.ErrInternalServerError, "session manager is closed")
	}

	id := uuid.NewString()
	s, err := m.factory(id)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s

	m.log.Info("session created", zap.String("session", id))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, pkg.WrapErrorf(nil, pkg.ErrNotFound, "session %s not found", id)
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return pkg.WrapErrorf(nil, pkg.ErrNotFound, "session %s not found", id)
	}
	return m.close(s)
}

func (m *Manager) close(s *Session) error {
	err := s.Close()
	if m.onClose != nil {
		if cerr := m.onClose(s.ID()); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Close closes every session.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var firstErr error
	for _, s := range sessions {
		if err := m.close(s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
