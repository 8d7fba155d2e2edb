// Package session is the key/value cache that carries context across quiz
// stages, standing in for the browser-persisted storage the pages relied on.
// It is a convenience cache, not a source of truth: the persisted signup and
// response rows are.
package session

import "sync"

// Keys written by the signup form and read back by later stages. Values are
// never explicitly deleted.
const (
	KeyTrialSignupID      = "trial_signup_id"
	KeyLastWhatsappNumber = "last_whatsapp_number"
)

// Store is the persistence adapter the quiz flow receives, so the storage
// mechanism is swappable and testable.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryStore is the in-process Store used per quiz session.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
