// Package campaign tracks named campaign statuses (quest flags, defeated bosses)
// and persists them through a Store.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ErrNoStore is returned by Load and Save when the manager has no store.
var ErrNoStore = errors.New("campaign: no store configured")

// StatusOracle answers whether a named status is currently set.
type StatusOracle interface {
	CheckStatus(name string) bool
}

// Store persists the status set of one save slot.
type Store interface {
	LoadStatuses(ctx context.Context) ([]string, error)
	SaveStatuses(ctx context.Context, statuses []string) error
}

// Manager is the in-memory campaign status set.
// Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	statuses map[string]struct{}
	store    Store
}

// NewManager creates a Manager backed by store; store may be nil for a
// session that is never saved.
func NewManager(store Store) *Manager {
	return &Manager{
		statuses: make(map[string]struct{}),
		store:    store,
	}
}

// CheckStatus reports whether name is set. The empty name is never set.
func (m *Manager) CheckStatus(name string) bool {
	if name == "" {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.statuses[name]
	return ok
}

// SetStatus sets name. Empty names are ignored.
func (m *Manager) SetStatus(name string) {
	if name == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.statuses[name]; ok {
		return
	}
	m.statuses[name] = struct{}{}
	slog.Debug("campaign status set", "status", name)
}

// UnsetStatus clears name.
func (m *Manager) UnsetStatus(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.statuses, name)
}

// Statuses returns the set statuses in sorted order.
func (m *Manager) Statuses() []string {
	m.mu.RLock()
	out := make([]string, 0, len(m.statuses))
	for s := range m.statuses {
		out = append(out, s)
	}
	m.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Load replaces the in-memory set with the stored one.
func (m *Manager) Load(ctx context.Context) error {
	if m.store == nil {
		return ErrNoStore
	}
	statuses, err := m.store.LoadStatuses(ctx)
	if err != nil {
		return fmt.Errorf("loading campaign statuses: %w", err)
	}

	m.mu.Lock()
	m.statuses = make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		if s != "" {
			m.statuses[s] = struct{}{}
		}
	}
	m.mu.Unlock()

	slog.Info("campaign loaded", "statuses", len(statuses))
	return nil
}

// Save writes the current set to the store.
func (m *Manager) Save(ctx context.Context) error {
	if m.store == nil {
		return ErrNoStore
	}
	statuses := m.Statuses()
	if err := m.store.SaveStatuses(ctx, statuses); err != nil {
		return fmt.Errorf("saving campaign statuses: %w", err)
	}
	slog.Info("campaign saved", "statuses", len(statuses))
	return nil
}

// MemoryStore keeps statuses in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	statuses []string
}

// NewMemoryStore creates a MemoryStore preloaded with statuses.
func NewMemoryStore(statuses ...string) *MemoryStore {
	return &MemoryStore{statuses: slices.Clone(statuses)}
}

// LoadStatuses implements Store.
func (s *MemoryStore) LoadStatuses(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.statuses), nil
}

// SaveStatuses implements Store.
func (s *MemoryStore) SaveStatuses(_ context.Context, statuses []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = slices.Clone(statuses)
	return nil
}
