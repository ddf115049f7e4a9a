package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"flightlist-service/pkg/logger"
	"flightlist-service/pkg/metrics"
)

// SessionManager owns the open flight list sessions
type SessionManager struct {
	deps        SessionDeps
	idleTimeout time.Duration
	metrics     *metrics.Metrics
	logger      logger.Logger

	mu       sync.RWMutex
	sessions map[string]*FlightListSession
	onClose  []func(id string)
}

// NewSessionManager creates a new session manager. Sessions idle for longer
// than idleTimeout are closed by Sweep; zero disables expiry.
func NewSessionManager(deps SessionDeps, idleTimeout time.Duration) *SessionManager {
	return &SessionManager{
		deps:        deps,
		idleTimeout: idleTimeout,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		sessions:    make(map[string]*FlightListSession),
	}
}

// OnClose registers fn to run after a session is closed by Close, Sweep or
// CloseAll
func (m *SessionManager) OnClose(fn func(id string)) {
	m.mu.Lock()
	m.onClose = append(m.onClose, fn)
	m.mu.Unlock()
}

// Create opens a session and starts its initial load
func (m *SessionManager) Create() *FlightListSession {
	id := uuid.NewString()
	session := NewFlightListSession(id, m.deps)

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	m.metrics.ActiveSessions.Inc()
	m.logger.Info("Session created", "sessionID", id)
	session.Start()
	return session
}

// Get returns the session with id
func (m *SessionManager) Get(id string) (*FlightListSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Close closes and forgets the session with id
func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	m.closeSession(id, session)
	return nil
}

// CloseAll closes every session
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*FlightListSession)
	m.mu.Unlock()

	for id, session := range sessions {
		m.closeSession(id, session)
	}
	m.logger.Info("All sessions closed", "count", len(sessions))
}

// Count returns the number of open sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle since before now minus the idle timeout and
// returns how many were closed
func (m *SessionManager) Sweep(now time.Time) int {
	if m.idleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idleTimeout)

	m.mu.RLock()
	var expired []string
	for id, session := range m.sessions {
		if session.IdleSince().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	closed := 0
	for _, id := range expired {
		if err := m.Close(id); err == nil {
			closed++
			m.logger.Info("Idle session expired", "sessionID", id)
		}
	}
	return closed
}

func (m *SessionManager) closeSession(id string, session *FlightListSession) {
	session.Close()
	m.metrics.ActiveSessions.Dec()

	m.mu.RLock()
	hooks := slices.Clone(m.onClose)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(id)
	}
}

// RunSweeper sweeps every interval until ctx is done
func (m *SessionManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
