// Package mcp implements the Model Context Protocol server for ccdi-catalog.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ccdi-federation/ccdi-catalog/internal/catalog"
	"github.com/ccdi-federation/ccdi-catalog/internal/filter"
	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/paginate"
	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

// DefaultBaseURL is used for pagination links when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// entityNames lists the values accepted by the "entity" argument.
var entityNames = []string{"subject", "sample", "file", "subject-diagnosis", "sample-diagnosis"}

// Server wraps an MCPServer with ccdi-catalog dependencies.
type Server struct {
	mcp     *mcpserver.MCPServer
	st      store.Store
	logger  *slog.Logger
	baseURL string
	perPage int
}

// NewServer creates a new MCP server. If st is nil, tool calls return an
// error response instead of panicking.
func NewServer(st store.Store, logger *slog.Logger, baseURL string, defaultPerPage int) *Server {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if defaultPerPage <= 0 {
		defaultPerPage = paginate.DefaultPerPage
	}
	s := &Server{
		st:      st,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		perPage: defaultPerPage,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"ccdi-catalog",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListTool(), s.handleList)
	mcpSrv.AddTool(buildGetTool(), s.handleGet)
	mcpSrv.AddTool(buildCountTool(), s.handleCount)
	mcpSrv.AddTool(buildSummaryTool(), s.handleSummary)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleList is the exported handler for the "list_entities" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleList(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleList(ctx, req)
}

// HandleGet is the exported handler for the "get_entity" tool.
func (s *Server) HandleGet(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleGet(ctx, req)
}

// HandleCount is the exported handler for the "count_by" tool.
func (s *Server) HandleCount(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleCount(ctx, req)
}

// HandleSummary is the exported handler for the "summary" tool.
func (s *Server) HandleSummary(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSummary(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// filterValues converts the "filters" argument into query values. Numbers
// and booleans are rendered the way they would appear in a URL.
func filterValues(req mcpgo.CallToolRequest) (url.Values, error) {
	values := url.Values{}
	raw, ok := req.GetArguments()["filters"]
	if !ok || raw == nil {
		return values, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("filters must be an object of field names to values")
	}
	for k, v := range m {
		switch tv := v.(type) {
		case string:
			values.Set(k, tv)
		case float64:
			values.Set(k, strconv.FormatFloat(tv, 'f', -1, 64))
		case bool:
			values.Set(k, strconv.FormatBool(tv))
		default:
			return nil, fmt.Errorf("filter %q must be a string or number", k)
		}
	}
	return values, nil
}

// pageArg returns a pagination argument rendered as a query value. Any value
// that was supplied is passed on verbatim, so that zero, fractional and
// non-numeric values are rejected by the parameter parser rather than
// replaced by the default.
func pageArg(req mcpgo.CallToolRequest, key string) (string, bool) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

// --- tool definitions ---

func buildListTool() mcpgo.Tool {
	return mcpgo.NewTool("list_entities",
		mcpgo.WithDescription("List catalog entities matching exact-value filters, one page at a time."),
		mcpgo.WithString("entity",
			mcpgo.Required(),
			mcpgo.Enum(entityNames...),
			mcpgo.Description("Entity collection: subject, sample, file, subject-diagnosis or sample-diagnosis"),
		),
		mcpgo.WithObject("filters",
			mcpgo.Description("Field name to value, e.g. {\"sex\": \"F\"}. Diagnosis collections also accept \"search\"."),
		),
		mcpgo.WithNumber("page",
			mcpgo.Description("1-based page number (default: 1)"),
		),
		mcpgo.WithNumber("per_page",
			mcpgo.Description("Entities per page (default: 100)"),
		),
	)
}

func buildGetTool() mcpgo.Tool {
	return mcpgo.NewTool("get_entity",
		mcpgo.WithDescription("Fetch one entity by organization, namespace and name."),
		mcpgo.WithString("entity",
			mcpgo.Required(),
			mcpgo.Enum("subject", "sample", "file"),
			mcpgo.Description("Entity type: subject, sample or file"),
		),
		mcpgo.WithString("organization", mcpgo.Required(), mcpgo.Description("Namespace organization")),
		mcpgo.WithString("namespace", mcpgo.Required(), mcpgo.Description("Namespace name")),
		mcpgo.WithString("name", mcpgo.Required(), mcpgo.Description("Entity name")),
	)
}

func buildCountTool() mcpgo.Tool {
	return mcpgo.NewTool("count_by",
		mcpgo.WithDescription("Group entities by the values of one metadata field."),
		mcpgo.WithString("entity",
			mcpgo.Required(),
			mcpgo.Enum("subject", "sample", "file"),
			mcpgo.Description("Entity type: subject, sample or file"),
		),
		mcpgo.WithString("field",
			mcpgo.Required(),
			mcpgo.Description("Metadata field to group by, e.g. sex"),
		),
	)
}

func buildSummaryTool() mcpgo.Tool {
	return mcpgo.NewTool("summary",
		mcpgo.WithDescription("Get the total number of subjects, samples and files in the catalog."),
	)
}

// --- tool handlers ---

// handleList runs the filter, sort and paginate pipeline for one collection.
func (s *Server) handleList(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	values, err := filterValues(req)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	for _, key := range []string{paginate.ParamPage, paginate.ParamPerPage} {
		if raw, ok := pageArg(req, key); ok {
			values.Set(key, raw)
		}
	}

	entity := req.GetString("entity", "")
	switch entity {
	case "subject":
		return runList(ctx, s, entity, values, filter.Subjects, s.st.Subjects)
	case "subject-diagnosis":
		return runList(ctx, s, entity, values, filter.SubjectDiagnoses, s.st.Subjects)
	case "sample":
		return runList(ctx, s, entity, values, filter.Samples, s.st.Samples)
	case "sample-diagnosis":
		return runList(ctx, s, entity, values, filter.SampleDiagnoses, s.st.Samples)
	case "file":
		return runList(ctx, s, entity, values, filter.Files, s.st.Files)
	default:
		return mcpgo.NewToolResultErrorf("invalid entity %q: must be one of %s", entity, strings.Join(entityNames, ", ")), nil
	}
}

func runList[T models.Entity](
	ctx context.Context,
	s *Server,
	route string,
	values url.Values,
	reg *filter.Registry[T],
	load func(context.Context) ([]T, error),
) (*mcpgo.CallToolResult, error) {
	req, err := catalog.ParseRequest(values, reg, s.perPage)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	snapshot, err := load(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("loading %ss failed: %s", reg.Entity(), err.Error()), nil
	}
	if len(snapshot) == 0 {
		return mcpgo.NewToolResultErrorf("the catalog has no %ss", reg.Entity()), nil
	}

	base, err := url.Parse(s.baseURL + "/" + route)
	if err != nil {
		return mcpgo.NewToolResultErrorf("invalid base url: %s", err.Error()), nil
	}
	q := url.Values{}
	for k, v := range req.Query {
		q.Set(k, v)
	}
	base.RawQuery = q.Encode()

	res, err := catalog.Run(snapshot, reg, req, base.String())
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("mcp: list", "entity", route, "page", res.Info.CurrentPage, "returned", len(res.Data))

	links := make(map[string]string, len(res.Links))
	for _, l := range res.Links {
		links[l.Rel.String()] = l.URL.String()
	}
	result := map[string]any{
		"page":  res.Info,
		"links": links,
		"data":  res.Data,
	}
	return toolResultJSON(result)
}

// handleGet looks up one entity by identifier.
func (s *Server) handleGet(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	id := models.NewIdentifier(
		req.GetString("organization", ""),
		req.GetString("namespace", ""),
		req.GetString("name", ""),
	)
	if id.Namespace.Organization == "" || id.Namespace.Name == "" || id.Name == "" {
		return mcpgo.NewToolResultError("organization, namespace and name are required"), nil
	}

	switch entity := req.GetString("entity", ""); entity {
	case "subject":
		return runGet(ctx, id, s.st.Subjects)
	case "sample":
		return runGet(ctx, id, s.st.Samples)
	case "file":
		return runGet(ctx, id, s.st.Files)
	default:
		return mcpgo.NewToolResultErrorf("invalid entity %q: must be one of subject, sample, file", entity), nil
	}
}

func runGet[T models.Entity](ctx context.Context, id models.Identifier, load func(context.Context) ([]T, error)) (*mcpgo.CallToolResult, error) {
	snapshot, err := load(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("loading entities failed: %s", err.Error()), nil
	}
	e, err := store.Find(snapshot, id)
	if err != nil {
		return mcpgo.NewToolResultErrorf("%s: %s", id, err.Error()), nil
	}
	return toolResultJSON(e)
}

// handleCount groups one collection by a field.
func (s *Server) handleCount(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	field := req.GetString("field", "")
	if strings.TrimSpace(field) == "" {
		return mcpgo.NewToolResultError("field is required and must not be empty"), nil
	}

	switch entity := req.GetString("entity", ""); entity {
	case "subject":
		return runCount(ctx, field, filter.Subjects, s.st.Subjects)
	case "sample":
		return runCount(ctx, field, filter.Samples, s.st.Samples)
	case "file":
		return runCount(ctx, field, filter.Files, s.st.Files)
	default:
		return mcpgo.NewToolResultErrorf("invalid entity %q: must be one of subject, sample, file", entity), nil
	}
}

func runCount[T models.Entity](ctx context.Context, field string, reg *filter.Registry[T], load func(context.Context) ([]T, error)) (*mcpgo.CallToolResult, error) {
	snapshot, err := load(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("loading %ss failed: %s", reg.Entity(), err.Error()), nil
	}
	counts, err := filter.CountBy(snapshot, reg, field)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	return toolResultJSON(counts)
}

// handleSummary returns the size of every collection.
func (s *Server) handleSummary(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("store is unavailable"), nil
	}

	subjects, err := s.st.Subjects(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("summary failed: %s", err.Error()), nil
	}
	samples, err := s.st.Samples(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("summary failed: %s", err.Error()), nil
	}
	files, err := s.st.Files(ctx)
	if err != nil {
		return mcpgo.NewToolResultErrorf("summary failed: %s", err.Error()), nil
	}

	result := map[string]int{
		"subjects": len(subjects),
		"samples":  len(samples),
		"files":    len(files),
	}
	return toolResultJSON(result)
}
