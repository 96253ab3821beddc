package ports_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/aretw0/unitconv/pkg/ports"
)

// MockStore is a minimal map-backed StateStore used to exercise the contract suite itself.
type MockStore struct {
	mu   sync.Mutex
	data map[string]domain.State
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]domain.State)}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = *state
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &state, nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestStateStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, NewMockStore())
}
