// Package filter narrows catalog entities by query parameters.
//
// Every entity type has a Registry: a closed, ordered list of filterable
// fields, each with an extractor that pulls zero or more string values from
// an entity and a MatchMode that decides how a query string is compared to
// those values. Filter walks the registry in order and keeps only entities
// matching every supplied parameter (logical AND across fields, logical OR
// across the values of one field).
package filter

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
)

// MatchMode controls how a query value is compared to extracted values.
type MatchMode int

const (
	// MatchExact requires a byte-for-byte equal value (case-sensitive).
	MatchExact MatchMode = iota + 1

	// MatchSearch requires the lower-cased query to be a substring of a
	// lower-cased value.
	MatchSearch

	// MatchContains requires the query to be a substring of a value (case-sensitive).
	MatchContains
)

// String returns the mode name.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchSearch:
		return "search"
	case MatchContains:
		return "contains"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// IsValid returns true if the mode is recognized.
func (m MatchMode) IsValid() bool {
	return m == MatchExact || m == MatchSearch || m == MatchContains
}

// Cardinality tells whether a field holds one value or a list of values.
type Cardinality int

const (
	Single Cardinality = iota + 1
	Multiple
)

// Extractor pulls the values of one field from an entity. ok is false when
// the field is entirely absent (no metadata block, or the field is unset);
// otherwise values holds at least one string.
type Extractor[T any] func(entity T) (values []string, ok bool)

// Field describes one filterable field of an entity type.
type Field[T any] struct {
	Name        string
	Cardinality Cardinality
	Mode        MatchMode
	Extract     Extractor[T]
}

// Registry is the ordered, immutable set of filterable fields for an entity type.
type Registry[T any] struct {
	entity string
	fields []Field[T]
	index  map[string]int
}

// NewRegistry validates fields and returns a Registry. Field names must be
// non-empty and unique, every field needs an extractor, and every mode and
// cardinality must be recognized.
func NewRegistry[T any](entity string, fields ...Field[T]) (*Registry[T], error) {
	if entity == "" {
		return nil, fmt.Errorf("filter: registry entity name must not be empty")
	}
	r := &Registry[T]{
		entity: entity,
		fields: make([]Field[T], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i := range fields {
		f := fields[i]
		if f.Name == "" {
			return nil, fmt.Errorf("filter: %s field %d has no name", entity, i)
		}
		if _, dup := r.index[f.Name]; dup {
			return nil, fmt.Errorf("filter: %s field %q registered twice", entity, f.Name)
		}
		if !f.Mode.IsValid() {
			return nil, fmt.Errorf("filter: %s field %q has unrecognized match mode %s", entity, f.Name, f.Mode)
		}
		if f.Cardinality != Single && f.Cardinality != Multiple {
			return nil, fmt.Errorf("filter: %s field %q has unrecognized cardinality %d", entity, f.Name, f.Cardinality)
		}
		if f.Extract == nil {
			return nil, fmt.Errorf("filter: %s field %q has no extractor", entity, f.Name)
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid field table.
// It is meant for package-level registries built at start-up.
func MustRegistry[T any](entity string, fields ...Field[T]) *Registry[T] {
	r, err := NewRegistry(entity, fields...)
	if err != nil {
		panic(err)
	}
	return r
}

// Entity returns the entity type name the registry describes.
func (r *Registry[T]) Entity() string { return r.entity }

// Fields returns the fields in registration order.
func (r *Registry[T]) Fields() []Field[T] {
	return slices.Clone(r.fields)
}

// Names returns the field names in registration order.
func (r *Registry[T]) Names() []string {
	names := make([]string, len(r.fields))
	for i := range r.fields {
		names[i] = r.fields[i].Name
	}
	return names
}

// Lookup returns the field with the given name.
func (r *Registry[T]) Lookup(name string) (Field[T], bool) {
	i, ok := r.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return r.fields[i], true
}

// Validate reports every key of q that is not a field of this registry.
func (r *Registry[T]) Validate(q Query) error {
	var unknown []string
	for name := range q {
		if _, ok := r.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &UnsupportedFieldError{Entity: r.entity, Fields: unknown}
}

// Query maps a field name to the raw value supplied by the caller.
// A key that is not present means "don't care" for that field.
type Query map[string]string

// QueryFromValues builds a Query from URL query values, skipping reserved
// keys such as pagination parameters. When a key is repeated the first
// value wins.
func QueryFromValues(values url.Values, reserved ...string) Query {
	q := make(Query, len(values))
	for key, vals := range values {
		if slices.Contains(reserved, key) || len(vals) == 0 {
			continue
		}
		q[key] = vals[0]
	}
	return q
}
