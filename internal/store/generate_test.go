package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	opts := GenerateOptions{Subjects: 20, Samples: 30, Files: 10, Seed: 42}
	assert.Equal(t, Generate(opts), Generate(opts))

	other := Generate(GenerateOptions{Subjects: 20, Samples: 30, Files: 10, Seed: 43})
	assert.NotEqual(t, Generate(opts), other)
}

func TestGenerate_ShapeAndReferences(t *testing.T) {
	c := Generate(GenerateOptions{Subjects: 50, Samples: 80, Files: 40, Seed: 1})
	require.Len(t, c.Subjects, 50)
	require.Len(t, c.Samples, 80)
	require.Len(t, c.Files, 40)

	subjects := make(map[string]bool, len(c.Subjects))
	for _, s := range c.Subjects {
		assert.Equal(t, exampleOrganization, s.Identifier.Namespace.Organization)
		assert.Contains(t, exampleNamespaces, s.Identifier.Namespace.Name)
		assert.True(t, s.Kind.IsValid())
		subjects[s.Identifier.String()] = true
	}
	for _, s := range c.Samples {
		assert.True(t, subjects[s.Subject.String()], "sample %s references a generated subject", s.Identifier)
	}
	for _, f := range c.Files {
		assert.Len(t, f.Samples, 1)
	}

	_, err := NewMemoryStore(c)
	assert.NoError(t, err, "generated identifiers are unique")
}

func TestGenerate_SomeMetadataAbsent(t *testing.T) {
	c := Generate(GenerateOptions{Subjects: 200, Samples: 1, Files: 1, Seed: 3})
	var missing, present int
	for _, s := range c.Subjects {
		if s.Metadata == nil {
			missing++
		} else {
			present++
		}
	}
	assert.Positive(t, missing)
	assert.Greater(t, present, missing)
}

func TestSeed_EncodeDecode(t *testing.T) {
	c := Generate(GenerateOptions{Subjects: 4, Samples: 4, Files: 4, Seed: 9})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestSeed_DecodeRejectsUnknownKeys(t *testing.T) {
	doc := `
subjects:
  - id:
      namespace: {organization: org, name: ns}
      name: Subject1
    kind: Participant
    metadata:
      sexx: {value: F}
`
	_, err := Decode(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestSeed_DecodeEmpty(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Subjects)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(t.TempDir() + "/missing.yaml")
	assert.Error(t, err)
}
