package api

import (
	"net/http"

	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

// fieldsWikiURL is the base of the per-field documentation links.
const fieldsWikiURL = "https://github.com/CBIIT/ccdi-federation-api/wiki/"

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.info)
}

func (s *Server) handleOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.store.Organizations(r.Context())
	if err != nil {
		s.logger.Error("failed to load organizations", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load organizations")
		return
	}
	s.writeJSON(w, http.StatusOK, orgs)
}

func (s *Server) handleOrganization(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.store.Organizations(r.Context())
	if err != nil {
		s.logger.Error("failed to load organizations", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load organizations")
		return
	}

	name := r.PathValue("name")
	org, err := store.FindOrganization(orgs, name)
	if err != nil {
		s.writeErrors(w, http.StatusNotFound, notFound("Organization with name '"+name+"'"))
		return
	}
	s.writeJSON(w, http.StatusOK, org)
}

func (s *Server) handleNamespaces(w http.ResponseWriter, r *http.Request) {
	namespaces, err := s.store.Namespaces(r.Context())
	if err != nil {
		s.logger.Error("failed to load namespaces", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load namespaces")
		return
	}
	s.writeJSON(w, http.StatusOK, namespaces)
}

func (s *Server) handleNamespace(w http.ResponseWriter, r *http.Request) {
	namespaces, err := s.store.Namespaces(r.Context())
	if err != nil {
		s.logger.Error("failed to load namespaces", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load namespaces")
		return
	}

	id := models.NamespaceID{Organization: r.PathValue("organization"), Name: r.PathValue("namespace")}
	ns, err := store.FindNamespace(namespaces, id)
	if err != nil {
		s.writeErrors(w, http.StatusNotFound, notFound(
			"Namespace with organization '"+id.Organization+"' and name '"+id.Name+"'"))
		return
	}
	s.writeJSON(w, http.StatusOK, ns)
}

// FieldDescription documents one harmonized metadata field.
type FieldDescription struct {
	Harmonized bool   `json:"harmonized"`
	Path       string `json:"path"`
	Multiple   bool   `json:"multiple"`
	Match      string `json:"match"`
	URL        string `json:"url"`
}

// FieldDescriptions is the body of the metadata field endpoints.
type FieldDescriptions struct {
	Fields []FieldDescription `json:"fields"`
}

// describeFields lists the filterable fields of reg in registration order.
// page is the wiki page documenting them, e.g. "Subject-Metadata-Fields".
func describeFields[T any](reg *filter.Registry[T], page string) FieldDescriptions {
	fields := reg.Fields()
	out := FieldDescriptions{Fields: make([]FieldDescription, 0, len(fields))}
	for _, f := range fields {
		out.Fields = append(out.Fields, FieldDescription{
			Harmonized: true,
			Path:       f.Name,
			Multiple:   f.Cardinality == filter.Multiple,
			Match:      f.Mode.String(),
			URL:        fieldsWikiURL + page + "#" + f.Name,
		})
	}
	return out
}

func fieldsHandler(s *Server, body FieldDescriptions) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, body)
	}
}
