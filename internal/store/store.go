package store

import (
	"context"
	"errors"

	"github.com/ccdi-federation/ccdi-catalog/internal/models"
)

// ErrNotFound is returned by lookups when the requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// Store hands out snapshots of the catalog. Every call returns a slice the
// caller owns: the store's lock is held only while copying, so callers may
// sort and slice the result freely. Entities themselves are shared and must
// be treated as read-only.
type Store interface {
	// Subjects returns a snapshot of all subjects.
	Subjects(ctx context.Context) ([]models.Subject, error)

	// Samples returns a snapshot of all samples.
	Samples(ctx context.Context) ([]models.Sample, error)

	// Files returns a snapshot of all files.
	Files(ctx context.Context) ([]models.File, error)

	// Organizations returns every organization, sorted by identifier.
	Organizations(ctx context.Context) ([]models.Organization, error)

	// Namespaces returns every namespace, sorted by identifier.
	Namespaces(ctx context.Context) ([]models.Namespace, error)

	// Close cleans up resources.
	Close() error
}

// Catalog is the full set of entities held by a store. Organizations and
// namespaces are optional: any that entities refer to without declaring
// them are added when the catalog is loaded.
type Catalog struct {
	Organizations []models.Organization `json:"organizations,omitempty" yaml:"organizations,omitempty"`
	Namespaces    []models.Namespace    `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	Subjects      []models.Subject      `json:"subjects" yaml:"subjects"`
	Samples       []models.Sample       `json:"samples" yaml:"samples"`
	Files         []models.File         `json:"files" yaml:"files"`
}

// Find returns the entity in entities with the given identifier.
func Find[T models.Entity](entities []T, id models.Identifier) (T, error) {
	for i := range entities {
		if entities[i].ID() == id {
			return entities[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}
