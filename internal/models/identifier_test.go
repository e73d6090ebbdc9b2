package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier_String(t *testing.T) {
	id := NewIdentifier("org", "ns", "Subject1")
	assert.Equal(t, "org/ns/Subject1", id.String())
	assert.Equal(t, "org/ns", id.Namespace.String())
}

func TestCompareIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		a, b Identifier
		want int
	}{
		{"equal", NewIdentifier("o", "n", "x"), NewIdentifier("o", "n", "x"), 0},
		{"organization first", NewIdentifier("a", "z", "z"), NewIdentifier("b", "a", "a"), -1},
		{"namespace before name", NewIdentifier("o", "b", "a"), NewIdentifier("o", "a", "z"), 1},
		{"name last", NewIdentifier("o", "n", "Subject1"), NewIdentifier("o", "n", "Subject2"), -1},
		{"byte order is case-sensitive", NewIdentifier("o", "n", "Z"), NewIdentifier("o", "n", "a"), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompareIdentifiers(tc.a, tc.b))
		})
	}
}

func TestAge_String(t *testing.T) {
	assert.Equal(t, "365", Age{Value: 365}.String())
	assert.Equal(t, "365.25", Age{Value: 365.25}.String())
	assert.Equal(t, "0", Age{}.String())
}

func TestSubjectKind_IsValid(t *testing.T) {
	for _, k := range ValidSubjectKinds {
		assert.True(t, k.IsValid(), "kind %q", k)
	}
	assert.False(t, SubjectKind("Mouse").IsValid())
	assert.False(t, SubjectKind("").IsValid())
}

func TestSubject_JSONShape(t *testing.T) {
	s := Subject{
		Identifier: NewIdentifier("org", "ns", "Subject1"),
		Kind:       SubjectKindParticipant,
		Metadata:   &SubjectMetadata{Sex: NewField("F")},
	}
	b, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	id, ok := raw["id"].(map[string]any)
	require.True(t, ok, "identifier is serialized under \"id\"")
	assert.Equal(t, "Subject1", id["name"])
	md, ok := raw["metadata"].(map[string]any)
	require.True(t, ok)
	sex, ok := md["sex"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "F", sex["value"])
}
