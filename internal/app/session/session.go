// Package session keeps logged-in operators in process memory. Sessions
// end on logout or when the process exits; nothing is persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/workspace"
)

// Session is one logged-in operator.
type Session struct {
	ID        string
	Identity  models.RosterEntry
	CreatedAt time.Time
	Workspace *workspace.Workspace
}

// WorkspaceFactory builds the workspace of a new session.
type WorkspaceFactory func(identity models.RosterEntry) *workspace.Workspace

// Manager owns every live session.
type Manager struct {
	newWorkspace WorkspaceFactory
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager(factory WorkspaceFactory) *Manager {
	return &Manager{
		newWorkspace: factory,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

// Create starts a session for identity under a fresh random id.
func (m *Manager) Create(identity models.RosterEntry) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		CreatedAt: m.now(),
	}
	if m.newWorkspace != nil {
		s.Workspace = m.newWorkspace(identity)
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Destroy ends a session and closes its workspace. Unknown ids are ignored.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok && s.Workspace != nil {
		s.Workspace.Close()
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close destroys every session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		if s.Workspace != nil {
			s.Workspace.Close()
		}
	}
}
