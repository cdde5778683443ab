// Package session holds the per-operator working state that each pipeline
// step reads and the previous step filled in. It replaces implicit global
// lookups with an explicit context object passed to every operation.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/draftmill/draftmill/internal/core/model"
	"github.com/draftmill/draftmill/internal/trends"
)

type Session struct {
	ID          string
	Model       string
	Query       string
	Videos      []model.Video
	Trends      []trends.Keyword
	Suggestions []string
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Create(modelName string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{
		ID:    uuid.NewString(),
		Model: modelName,
	}
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}
