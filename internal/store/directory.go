package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ccdi-federation/ccdi-catalog/internal/models"
)

// ErrNamespaceNotFound is returned when no namespace has the requested identifier.
var ErrNamespaceNotFound = fmt.Errorf("namespace %w", ErrNotFound)

// ErrOrganizationNotFound is returned when no organization has the requested identifier.
var ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)

// directory completes the declared organizations and namespaces of c with
// every one referenced by an entity identifier. A referenced organization
// that is not declared is named after its identifier. Both lists come back
// sorted by identifier.
func directory(c Catalog) ([]models.Organization, []models.Namespace, error) {
	namespaces := make(map[models.NamespaceID]models.Namespace, len(c.Namespaces))
	for _, ns := range c.Namespaces {
		if ns.ID.Organization == "" || ns.ID.Name == "" {
			return nil, nil, fmt.Errorf("store: namespace %q needs an organization and a name", ns.ID)
		}
		if _, dup := namespaces[ns.ID]; dup {
			return nil, nil, fmt.Errorf("store: duplicate namespace %s", ns.ID)
		}
		namespaces[ns.ID] = ns
	}
	reference := func(id models.Identifier) {
		if _, ok := namespaces[id.Namespace]; !ok {
			namespaces[id.Namespace] = models.Namespace{ID: id.Namespace}
		}
	}
	for i := range c.Subjects {
		reference(c.Subjects[i].Identifier)
	}
	for i := range c.Samples {
		reference(c.Samples[i].Identifier)
	}
	for i := range c.Files {
		reference(c.Files[i].Identifier)
	}

	orgs := make(map[string]models.Organization, len(c.Organizations))
	for _, o := range c.Organizations {
		if o.Identifier == "" {
			return nil, nil, fmt.Errorf("store: organization %q has no identifier", o.Name)
		}
		if _, dup := orgs[o.Identifier]; dup {
			return nil, nil, fmt.Errorf("store: duplicate organization %s", o.Identifier)
		}
		orgs[o.Identifier] = o
	}
	for id := range namespaces {
		if _, ok := orgs[id.Organization]; !ok {
			orgs[id.Organization] = models.Organization{Identifier: id.Organization, Name: id.Organization}
		}
	}

	nsList := make([]models.Namespace, 0, len(namespaces))
	for _, ns := range namespaces {
		nsList = append(nsList, ns)
	}
	slices.SortFunc(nsList, func(a, b models.Namespace) int {
		return models.CompareNamespaceIDs(a.ID, b.ID)
	})

	orgList := make([]models.Organization, 0, len(orgs))
	for _, o := range orgs {
		orgList = append(orgList, o)
	}
	slices.SortFunc(orgList, func(a, b models.Organization) int {
		return cmp.Compare(a.Identifier, b.Identifier)
	})
	return orgList, nsList, nil
}

// FindNamespace returns the namespace with the given identifier.
func FindNamespace(namespaces []models.Namespace, id models.NamespaceID) (models.Namespace, error) {
	for i := range namespaces {
		if namespaces[i].ID == id {
			return namespaces[i], nil
		}
	}
	return models.Namespace{}, ErrNamespaceNotFound
}

// FindOrganization returns the organization with the given identifier.
func FindOrganization(orgs []models.Organization, identifier string) (models.Organization, error) {
	for i := range orgs {
		if orgs[i].Identifier == identifier {
			return orgs[i], nil
		}
	}
	return models.Organization{}, ErrOrganizationNotFound
}
