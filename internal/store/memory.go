package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ccdi-federation/ccdi-catalog/internal/models"
)

// MemoryStore is an in-memory Store guarded by a read/write mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	catalog Catalog
	updated time.Time
}

// NewMemoryStore creates a store holding c. Duplicate identifiers within
// one entity type, duplicate namespaces and duplicate organizations are
// rejected.
func NewMemoryStore(c Catalog) (*MemoryStore, error) {
	m := &MemoryStore{}
	if err := m.Replace(c); err != nil {
		return nil, err
	}
	return m, nil
}

// Replace swaps the whole catalog atomically. Snapshots handed out earlier
// are unaffected.
func (m *MemoryStore) Replace(c Catalog) error {
	if err := checkUnique("subject", c.Subjects); err != nil {
		return err
	}
	if err := checkUnique("sample", c.Samples); err != nil {
		return err
	}
	if err := checkUnique("file", c.Files); err != nil {
		return err
	}

	orgs, namespaces, err := directory(c)
	if err != nil {
		return err
	}

	next := Catalog{
		Organizations: orgs,
		Namespaces:    namespaces,
		Subjects:      slices.Clone(c.Subjects),
		Samples:       slices.Clone(c.Samples),
		Files:         slices.Clone(c.Files),
	}

	m.mu.Lock()
	m.catalog = next
	m.updated = time.Now().UTC()
	m.mu.Unlock()
	return nil
}

// Subjects returns a snapshot of all subjects.
func (m *MemoryStore) Subjects(_ context.Context) ([]models.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.catalog.Subjects), nil
}

// Samples returns a snapshot of all samples.
func (m *MemoryStore) Samples(_ context.Context) ([]models.Sample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.catalog.Samples), nil
}

// Files returns a snapshot of all files.
func (m *MemoryStore) Files(_ context.Context) ([]models.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.catalog.Files), nil
}

// Organizations returns every organization, sorted by identifier.
func (m *MemoryStore) Organizations(_ context.Context) ([]models.Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.catalog.Organizations), nil
}

// Namespaces returns every namespace, sorted by identifier.
func (m *MemoryStore) Namespaces(_ context.Context) ([]models.Namespace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.catalog.Namespaces), nil
}

// Snapshot returns a copy of the whole catalog, including the organizations
// and namespaces derived from entity identifiers.
func (m *MemoryStore) Snapshot() Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Catalog{
		Organizations: slices.Clone(m.catalog.Organizations),
		Namespaces:    slices.Clone(m.catalog.Namespaces),
		Subjects:      slices.Clone(m.catalog.Subjects),
		Samples:       slices.Clone(m.catalog.Samples),
		Files:         slices.Clone(m.catalog.Files),
	}
}

// UpdatedAt returns when the catalog was last replaced.
func (m *MemoryStore) UpdatedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updated
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error { return nil }

func checkUnique[T models.Entity](entity string, entities []T) error {
	seen := make(map[models.Identifier]struct{}, len(entities))
	for i := range entities {
		id := entities[i].ID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("store: duplicate %s identifier %s", entity, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
