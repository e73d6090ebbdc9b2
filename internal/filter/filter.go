package filter

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// UnsupportedFieldError is returned when a query names fields the entity
// type does not have.
type UnsupportedFieldError struct {
	Entity string
	Fields []string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported %s field(s): %s", e.Entity, strings.Join(e.Fields, ", "))
}

// Filter returns the entities that match every field supplied in q, in
// their original relative order. Unknown keys are rejected before any
// filtering happens. The input slice is never modified.
func Filter[T any](entities []T, reg *Registry[T], q Query) ([]T, error) {
	if err := reg.Validate(q); err != nil {
		return nil, err
	}

	working := slices.Clone(entities)
	for _, f := range reg.fields {
		query, ok := q[f.Name]
		if !ok {
			continue
		}
		kept := working[:0:0]
		for _, e := range working {
			values, present := f.Extract(e)
			if Matches(values, present, query, f.Mode) {
				kept = append(kept, e)
			}
		}
		working = kept
	}
	return working, nil
}

// ValueCount is the number of entities carrying a given value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Counts summarizes the values of one field across a collection.
type Counts struct {
	Total   int          `json:"total"`
	Missing int          `json:"missing"`
	Values  []ValueCount `json:"values"`
}

// CountBy groups entities by the values of field. Entities where the field
// is absent are counted as missing. Each distinct value of a multi-valued
// field counts once per entity. Only exact-match fields can be grouped.
// Values are ordered by descending count, then by value.
func CountBy[T any](entities []T, reg *Registry[T], field string) (Counts, error) {
	f, ok := reg.Lookup(field)
	if !ok || f.Mode != MatchExact {
		return Counts{}, &UnsupportedFieldError{Entity: reg.entity, Fields: []string{field}}
	}

	counts := Counts{Total: len(entities), Values: []ValueCount{}}
	tally := make(map[string]int)
	for _, e := range entities {
		values, present := f.Extract(e)
		if !present {
			counts.Missing++
			continue
		}
		seen := make(map[string]struct{}, len(values))
		for _, v := range values {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			tally[v]++
		}
	}

	for v, c := range tally {
		counts.Values = append(counts.Values, ValueCount{Value: v, Count: c})
	}
	sort.Slice(counts.Values, func(i, j int) bool {
		if counts.Values[i].Count != counts.Values[j].Count {
			return counts.Values[i].Count > counts.Values[j].Count
		}
		return counts.Values[i].Value < counts.Values[j].Value
	})
	return counts, nil
}
