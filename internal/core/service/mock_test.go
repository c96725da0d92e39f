package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rl1809/invstrar/internal/core/domain"
)

// Mock KeyValueStore
type mockStore struct {
	items    map[string]string
	failSet  bool
	setCalls int
	mu       sync.Mutex
}

var errStoreUnavailable = errors.New("store unavailable")

func newMockStore() *mockStore {
	return &mockStore{items: make(map[string]string)}
}

func (m *mockStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *mockStore) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.failSet {
		return errStoreUnavailable
	}
	m.items[key] = value
	return nil
}

func (m *mockStore) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *mockStore) raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

// Mock BackupArchive
type mockArchive struct {
	backups []domain.ArchivedBackup
	mu      sync.Mutex
}

func (m *mockArchive) SaveBackup(ctx context.Context, archived domain.ArchivedBackup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backups = append(m.backups, archived)
	return nil
}

func (m *mockArchive) LatestBackup(ctx context.Context) (*domain.ArchivedBackup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.backups) == 0 {
		return nil, nil
	}
	sorted := append([]domain.ArchivedBackup(nil), m.backups...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	return &sorted[0], nil
}

func (m *mockArchive) GetBackup(ctx context.Context, id string) (*domain.ArchivedBackup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.backups {
		if m.backups[i].ID == id {
			b := m.backups[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (m *mockArchive) ListBackups(ctx context.Context, limit int) ([]domain.ArchivedBackup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ArchivedBackup(nil), m.backups...), nil
}

func (m *mockArchive) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.backups)
}

func newTestServices(store *mockStore, archive *mockArchive) *Services {
	// a nil *mockArchive would be a non-nil interface
	if archive == nil {
		return NewServices(store, nil, Options{LowStockThreshold: 30}, 10)
	}
	return NewServices(store, archive, Options{LowStockThreshold: 30}, 10)
}
