// Package models defines the catalog entities served by ccdi-catalog:
// subjects, samples and files, together with their identifiers and
// harmonized metadata blocks.
package models

import (
	"cmp"
	"fmt"
	"strconv"
)

// NamespaceID identifies a namespace within an organization.
type NamespaceID struct {
	Organization string `json:"organization" yaml:"organization"`
	Name         string `json:"name" yaml:"name"`
}

// String returns the namespace rendered as "organization/name".
func (n NamespaceID) String() string {
	return n.Organization + "/" + n.Name
}

// Identifier is the stable identity of an entity: the namespace it belongs
// to plus a name that is unique within that namespace for a given entity type.
type Identifier struct {
	Namespace NamespaceID `json:"namespace" yaml:"namespace"`
	Name      string      `json:"name" yaml:"name"`
}

// NewIdentifier returns an Identifier within the given namespace.
func NewIdentifier(organization, namespace, name string) Identifier {
	return Identifier{
		Namespace: NamespaceID{Organization: organization, Name: namespace},
		Name:      name,
	}
}

// String returns the identifier rendered as "organization/namespace/name".
func (id Identifier) String() string {
	return fmt.Sprintf("%s/%s", id.Namespace, id.Name)
}

// CompareIdentifiers orders identifiers by namespace organization, then
// namespace name, then entity name. Distinct identifiers never compare equal.
func CompareIdentifiers(a, b Identifier) int {
	if c := cmp.Compare(a.Namespace.Organization, b.Namespace.Organization); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Namespace.Name, b.Namespace.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Entity is implemented by every type the catalog exposes.
type Entity interface {
	ID() Identifier
}

// Field is a harmonized metadata value drawn from a controlled vocabulary.
type Field struct {
	Value     string   `json:"value" yaml:"value"`
	Ancestors []string `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`
	Comment   string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// NewField returns a Field holding only a value.
func NewField(value string) *Field {
	return &Field{Value: value}
}

// String returns the field value.
func (f Field) String() string { return f.Value }

// Age is an age in days.
type Age struct {
	Value   float64 `json:"value" yaml:"value"`
	Comment string  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// String renders the age with the shortest exact decimal representation,
// so 365 renders as "365" and 365.25 as "365.25".
func (a Age) String() string {
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// Deposition is an accession for a public repository the entity was deposited to.
type Deposition struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// DepositionDbGaP is the only deposition repository currently recognized.
const DepositionDbGaP = "dbGaP"

// Unharmonized holds provider-specific metadata without federation-wide agreement.
type Unharmonized map[string]any
