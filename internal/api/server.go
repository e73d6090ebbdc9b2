package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ccdi-federation/ccdi-catalog/internal/catalog"
	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
	"github.com/ccdi-federation/ccdi-catalog/internal/metrics"
	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/paginate"
	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

// Options configures a Server.
type Options struct {
	// BaseURL is the scheme and host used for Link headers. When empty it is
	// derived from the incoming request.
	BaseURL string

	// DefaultPerPage is the page size used when per_page is omitted.
	DefaultPerPage int

	// Info is served on /info. DefaultInformation is used when nil, and a
	// zero LastUpdated is set to the time the server was created.
	Info *Information
}

// Server is an HTTP API server that exposes the catalog.
type Server struct {
	store   store.Store
	logger  *slog.Logger
	baseURL string
	perPage int
	info    Information
}

// NewServer creates a new Server with the given dependencies.
func NewServer(st store.Store, logger *slog.Logger, opts Options) *Server {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = paginate.DefaultPerPage
	}
	info := DefaultInformation()
	if opts.Info != nil {
		info = *opts.Info
	}
	if info.Data.LastUpdated.IsZero() {
		info.Data.LastUpdated = time.Now().UTC()
	}
	return &Server{
		store:   st,
		logger:  logger,
		baseURL: opts.BaseURL,
		perPage: opts.DefaultPerPage,
		info:    info,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	routes(mux, s, "subject", filter.Subjects, s.store.Subjects)
	mux.HandleFunc("GET /subject-diagnosis", list(s, filter.SubjectDiagnoses, s.store.Subjects))

	routes(mux, s, "sample", filter.Samples, s.store.Samples)
	mux.HandleFunc("GET /sample-diagnosis", list(s, filter.SampleDiagnoses, s.store.Samples))

	routes(mux, s, "file", filter.Files, s.store.Files)

	mux.HandleFunc("GET /organization", s.handleOrganizations)
	mux.HandleFunc("GET /organization/{name}", s.handleOrganization)
	mux.HandleFunc("GET /namespace", s.handleNamespaces)
	mux.HandleFunc("GET /namespace/{organization}/{namespace}", s.handleNamespace)
	mux.HandleFunc("GET /info", s.handleInfo)

	mux.HandleFunc("GET /metadata/fields/subject", fieldsHandler(s, describeFields(filter.Subjects, "Subject-Metadata-Fields")))
	mux.HandleFunc("GET /metadata/fields/sample", fieldsHandler(s, describeFields(filter.Samples, "Sample-Metadata-Fields")))
	mux.HandleFunc("GET /metadata/fields/file", fieldsHandler(s, describeFields(filter.Files, "File-Metadata-Fields")))

	mux.HandleFunc("/", s.handleInvalidRoute)

	return s.middleware(mux)
}

// loader returns a private snapshot of one entity collection.
type loader[T models.Entity] func(ctx context.Context) ([]T, error)

// routes registers the list, summary, count and show endpoints for an entity.
func routes[T models.Entity](mux *http.ServeMux, s *Server, entity string, reg *filter.Registry[T], load loader[T]) {
	mux.HandleFunc("GET /"+entity, list(s, reg, load))
	mux.HandleFunc("GET /"+entity+"/summary", summary(s, reg, load))
	mux.HandleFunc("GET /"+entity+"/by/{field}/count", countBy(s, reg, load))
	mux.HandleFunc("GET /"+entity+"/{organization}/{namespace}/{name}", show(s, reg, load))
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInvalidRoute(w http.ResponseWriter, r *http.Request) {
	s.writeErrors(w, http.StatusNotFound, invalidRoute(r.Method, r.URL.Path))
}

// Counts is the number of entities on the current page and across all pages.
type Counts struct {
	Current int `json:"current"`
	All     int `json:"all"`
}

// Summary wraps the counts of a list response.
type Summary struct {
	Counts Counts `json:"counts"`
}

// listResponse is returned by the list endpoints.
type listResponse[T any] struct {
	Summary Summary `json:"summary"`
	Data    []T     `json:"data"`
}

func list[T models.Entity](s *Server, reg *filter.Registry[T], load loader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := catalog.ParseQuery(r.URL.RawQuery)
		if err != nil {
			s.handleCatalogError(w, err, reg.Entity())
			return
		}
		req, err := catalog.ParseRequest(values, reg, s.perPage)
		if err != nil {
			s.handleCatalogError(w, err, reg.Entity())
			return
		}

		snapshot, err := load(r.Context())
		if err != nil {
			s.logger.Error("failed to load entities", "entity", reg.Entity(), "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to load "+reg.Entity()+"s")
			return
		}

		base, err := s.linkBase(r, req.Query)
		if err != nil {
			s.logger.Error("failed to build link base", "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to build links")
			return
		}

		res, err := catalog.Run(snapshot, reg, req, base)
		if err != nil {
			s.handleCatalogError(w, err, reg.Entity())
			return
		}

		metrics.AddEntities(reg.Entity(), len(res.Data))
		w.Header().Set("link", res.Links.String())
		s.writeJSON(w, http.StatusOK, listResponse[T]{
			Summary: Summary{Counts: Counts{Current: len(res.Data), All: res.Info.TotalEntities}},
			Data:    res.Data,
		})
	}
}

// totalResponse is returned by the summary endpoints.
type totalResponse struct {
	Counts struct {
		Total int `json:"total"`
	} `json:"counts"`
}

func summary[T models.Entity](s *Server, reg *filter.Registry[T], load loader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := load(r.Context())
		if err != nil {
			s.logger.Error("failed to load entities", "entity", reg.Entity(), "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to load "+reg.Entity()+"s")
			return
		}
		var resp totalResponse
		resp.Counts.Total = len(snapshot)
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func countBy[T models.Entity](s *Server, reg *filter.Registry[T], load loader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := load(r.Context())
		if err != nil {
			s.logger.Error("failed to load entities", "entity", reg.Entity(), "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to load "+reg.Entity()+"s")
			return
		}

		counts, err := filter.CountBy(snapshot, reg, r.PathValue("field"))
		if err != nil {
			s.handleCatalogError(w, err, reg.Entity())
			return
		}
		s.writeJSON(w, http.StatusOK, counts)
	}
}

func show[T models.Entity](s *Server, reg *filter.Registry[T], load loader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := models.NewIdentifier(r.PathValue("organization"), r.PathValue("namespace"), r.PathValue("name"))

		snapshot, err := load(r.Context())
		if err != nil {
			s.logger.Error("failed to load entities", "entity", reg.Entity(), "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to load "+reg.Entity()+"s")
			return
		}

		entity, err := store.Find(snapshot, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				s.writeErrors(w, http.StatusNotFound, notFound(
					capitalize(reg.Entity())+" with namespace '"+id.Namespace.Name+"' and name '"+id.Name+"'"))
				return
			}
			s.logger.Error("failed to find entity", "id", id.String(), "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to find "+reg.Entity())
			return
		}
		s.writeJSON(w, http.StatusOK, entity)
	}
}

// --- helpers ---

// handleCatalogError writes the response for an error returned by the
// catalog pipeline.
func (s *Server) handleCatalogError(w http.ResponseWriter, err error, entity string) {
	status, kinds, ok := catalogErrors(err, entity)
	if !ok {
		s.logger.Error("catalog request failed", "entity", entity, "error", err)
		s.writeError(w, status, "internal server error")
		return
	}
	s.writeErrors(w, status, kinds...)
}

// linkBase returns the absolute URL that pagination links are built on:
// the configured or request-derived origin, the request path, and the
// filter parameters of the request.
func (s *Server) linkBase(r *http.Request, q filter.Query) (string, error) {
	origin := s.baseURL
	if origin == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		origin = scheme + "://" + r.Host
	}

	u, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	u = u.JoinPath(r.URL.Path)

	values := make(url.Values, len(q))
	for k, v := range q {
		values.Set(k, v)
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response for failures that are not the
// caller's fault.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
