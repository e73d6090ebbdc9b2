package store

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a catalog from a YAML (or JSON) seed file.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("store: reading seed file: %w", err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Catalog{}, fmt.Errorf("store: %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a catalog document. Unknown keys are rejected so that a
// misspelled metadata field does not silently disappear.
func Decode(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decoding catalog: %w", err)
	}
	return c, nil
}

// Encode writes c as a YAML document that Decode can read back.
func Encode(w io.Writer, c Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}
