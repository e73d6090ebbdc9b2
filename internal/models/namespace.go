package models

import "cmp"

// Organization is a data provider that owns one or more namespaces.
type Organization struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Name       string `json:"name" yaml:"name"`
}

// Namespace groups entities published by one organization, usually one study.
type Namespace struct {
	ID           NamespaceID        `json:"id" yaml:"id"`
	ContactEmail string             `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
	Description  string             `json:"description,omitempty" yaml:"description,omitempty"`
	Metadata     *NamespaceMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NamespaceMetadata is the harmonized metadata of a namespace.
type NamespaceMetadata struct {
	StudyShortTitle *Field `json:"study_short_title,omitempty" yaml:"study_short_title,omitempty"`
}

// CompareNamespaceIDs orders namespaces by organization, then name.
func CompareNamespaceIDs(a, b NamespaceID) int {
	if c := cmp.Compare(a.Organization, b.Organization); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}
