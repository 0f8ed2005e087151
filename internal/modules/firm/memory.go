// README: In-process policy list used by the CLI and by tests.
package firm

import (
	"context"
	"sync"

	"claimcipher/internal/types"
)

// MemoryStore keeps policies in insertion order behind a mutex.
type MemoryStore struct {
	mu       sync.Mutex
	policies []Policy
}

func NewMemoryStore(seed ...Policy) *MemoryStore {
	return &MemoryStore{policies: append([]Policy(nil), seed...)}
}

func (m *MemoryStore) List(_ context.Context) ([]Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Policy(nil), m.policies...), nil
}

func (m *MemoryStore) Get(_ context.Context, id types.ID) (Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		return m.policies[i], nil
	}
	return Policy{}, ErrNotFound
}

func (m *MemoryStore) Insert(_ context.Context, p Policy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(p.ID) >= 0 {
		return ErrDuplicate
	}
	m.policies = append(m.policies, p)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, p Policy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.policies[i] = p
	return nil
}

func (m *MemoryStore) DeleteUnlessLast(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if len(m.policies) <= 1 {
		return ErrLastPolicy
	}
	m.policies = append(m.policies[:i], m.policies[i+1:]...)
	return nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.policies), nil
}

func (m *MemoryStore) indexOf(id types.ID) int {
	for i, p := range m.policies {
		if p.ID == id {
			return i
		}
	}
	return -1
}
