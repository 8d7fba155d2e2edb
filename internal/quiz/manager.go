package quiz

import (
	"sync"

	"github.com/google/uuid"
	"github.com/trolliama/copivaga-landing/internal/session"
)

// Manager tracks one Wizard per visitor session, keyed by an opaque token
// carried in a cookie. Each wizard gets its own memory store, standing in
// for that browser's persisted storage.
type Manager struct {
	mu      sync.Mutex
	flows   map[string]*Wizard
	answers AnswerStore
}

func NewManager(answers AnswerStore) *Manager {
	return &Manager{
		flows:   make(map[string]*Wizard),
		answers: answers,
	}
}

// Get returns the wizard for a token, if one exists.
func (m *Manager) Get(token string) (*Wizard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.flows[token]
	return w, ok
}

// Create opens a fresh flow and returns its token.
func (m *Manager) Create() (string, *Wizard) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	w := New(m.answers, session.NewMemoryStore())
	m.flows[token] = w
	return token, w
}

// GetOrCreate resumes the flow behind token, creating one when the token is
// unknown or empty. The possibly-new token is returned.
func (m *Manager) GetOrCreate(token string) (string, *Wizard) {
	if token != "" {
		if w, ok := m.Get(token); ok {
			return token, w
		}
	}
	return m.Create()
}
