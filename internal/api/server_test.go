package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccdi-federation/ccdi-catalog/internal/api"
	"github.com/ccdi-federation/ccdi-catalog/internal/metrics"
	"github.com/ccdi-federation/ccdi-catalog/internal/models"
	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

const testBaseURL = "https://catalog.example.org"

// testCatalog holds 250 subjects with sex=F plus one subject without metadata,
// two samples and one file.
func testCatalog() store.Catalog {
	var c store.Catalog
	for i := range 250 {
		c.Subjects = append(c.Subjects, models.Subject{
			Identifier: models.NewIdentifier("org", "ns", fmt.Sprintf("Subject%03d", i+1)),
			Kind:       models.SubjectKindParticipant,
			Metadata: &models.SubjectMetadata{
				Sex:                 models.NewField("F"),
				AssociatedDiagnoses: []models.Field{{Value: "Neuroblastoma"}},
			},
		})
	}
	c.Subjects = append(c.Subjects, models.Subject{
		Identifier: models.NewIdentifier("org", "ns", "Subject999"),
		Kind:       models.SubjectKindCellLine,
	})
	c.Samples = []models.Sample{
		{
			Identifier: models.NewIdentifier("org", "ns", "SampleA"),
			Subject:    c.Subjects[0].Identifier,
			Metadata:   &models.SampleMetadata{Diagnosis: models.NewField("Ewing Sarcoma"), TissueType: models.NewField("Tumor")},
		},
		{
			Identifier: models.NewIdentifier("org", "ns", "SampleB"),
			Subject:    c.Subjects[1].Identifier,
			Metadata:   &models.SampleMetadata{Diagnosis: models.NewField("Osteosarcoma"), TissueType: models.NewField("Normal")},
		},
	}
	c.Files = []models.File{{
		Identifier: models.NewIdentifier("org", "ns", "File1"),
		Samples:    []models.Identifier{c.Samples[0].Identifier},
		Metadata:   &models.FileMetadata{Type: models.NewField("BAM")},
	}}
	return c
}

// newTestServer creates a test HTTP server backed by a MemoryStore.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.NewMemoryStore(testCatalog())
	require.NoError(t, err)
	srv := api.NewServer(st, logger, api.Options{BaseURL: testBaseURL, DefaultPerPage: 100})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

type listBody struct {
	Summary api.Summary      `json:"summary"`
	Data    []models.Subject `json:"data"`
}

func TestAPI_Healthz(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/healthz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp.Body)["status"])
	assert.NotEmpty(t, resp.Header.Get(api.RequestIDHeader))
}

func TestAPI_RequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+"/healthz", http.NoBody)
	require.NoError(t, err)
	req.Header.Set(api.RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(api.RequestIDHeader))
}

func TestAPI_ListSubjects_MiddlePage(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject?sex=F&page=2&per_page=100")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, resp.Body)
	require.Len(t, body.Data, 100)
	assert.Equal(t, "Subject101", body.Data[0].Identifier.Name)
	assert.Equal(t, "Subject200", body.Data[99].Identifier.Name)
	assert.Equal(t, api.Counts{Current: 100, All: 250}, body.Summary.Counts)

	link := resp.Header.Get("Link")
	assert.Equal(t, strings.Join([]string{
		`<https://catalog.example.org/subject?page=1&per_page=100&sex=F>; rel="first"`,
		`<https://catalog.example.org/subject?page=1&per_page=100&sex=F>; rel="prev"`,
		`<https://catalog.example.org/subject?page=3&per_page=100&sex=F>; rel="next"`,
		`<https://catalog.example.org/subject?page=3&per_page=100&sex=F>; rel="last"`,
	}, ", "), link)
}

func TestAPI_ListSubjects_DefaultPage(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, resp.Body)
	assert.Len(t, body.Data, 100)
	assert.Equal(t, 251, body.Summary.Counts.All)
}

func TestAPI_ListSubjects_EmptyPage(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject?sex=F&page=5")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, api.KindEmptyPage, body.Errors[0].Kind)
	assert.Equal(t, []string{"page", "per_page"}, body.Errors[0].Parameters)
	assert.Equal(t, "no subjects selected", body.Errors[0].Reason)
}

func TestAPI_ListSubjects_NoMatches(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject?sex=f")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, api.KindEmptyPage, decode[api.Errors](t, resp.Body).Errors[0].Kind)
}

func TestAPI_ListSubjects_InvalidParameters(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject?page=0&per_page=abc")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, api.KindInvalidParameters, body.Errors[0].Kind)
	assert.Equal(t, []string{"page", "per_page"}, body.Errors[0].Parameters)
	assert.Equal(t, "Invalid value for parameters 'page' and 'per_page': must be a positive integer", body.Errors[0].Message)
}

func TestAPI_ListSubjects_MalformedQuery(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		params []string
	}{
		{"bad escape in value", "sex=%zz", []string{"sex"}},
		{"semicolon separator", "sex=M;race=x", []string{"sex"}},
		{"bad pair among good ones", "per_page=5&race=%G1&sex=F", []string{"race"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := get(t, ts.URL+"/subject?"+tc.query)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			body := decode[api.Errors](t, resp.Body)
			require.Len(t, body.Errors, 1)
			assert.Equal(t, api.KindInvalidParameters, body.Errors[0].Kind)
			assert.Equal(t, tc.params, body.Errors[0].Parameters)
			assert.Contains(t, body.Errors[0].Reason, "malformed query string")
		})
	}
}

func TestAPI_ListSubjects_UnsupportedFields(t *testing.T) {
	ts := newTestServer(t)
	before := testutil.ToFloat64(metrics.ErrorsTotal.WithLabelValues(api.KindUnsupportedField))

	resp := get(t, ts.URL+"/subject?zodiac=Leo&color=red")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "color", body.Errors[0].Field)
	assert.Equal(t, "zodiac", body.Errors[1].Field)
	assert.Equal(t, "This field is not present for subjects.", body.Errors[0].Reason)

	after := testutil.ToFloat64(metrics.ErrorsTotal.WithLabelValues(api.KindUnsupportedField))
	assert.InDelta(t, 2, after-before, 0.001)
}

func TestAPI_SubjectDiagnosisSearch(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject-diagnosis?search=BLASTOMA&per_page=10")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, resp.Body)
	assert.Len(t, body.Data, 10)
	assert.Equal(t, 250, body.Summary.Counts.All)
	assert.Contains(t, resp.Header.Get("Link"), "https://catalog.example.org/subject-diagnosis?page=1&per_page=10&search=BLASTOMA")
}

func TestAPI_SampleDiagnosisSearch(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/sample-diagnosis?search=ewing")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Summary api.Summary     `json:"summary"`
		Data    []models.Sample `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "SampleA", body.Data[0].Identifier.Name)
}

func TestAPI_SearchNotAllowedOnPlainList(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/sample?search=ewing")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAPI_ShowEntity(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/file/org/ns/File1")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	f := decode[models.File](t, resp.Body)
	assert.Equal(t, "File1", f.Identifier.Name)
	require.NotNil(t, f.Metadata)
	assert.Equal(t, "BAM", f.Metadata.Type.Value)
}

func TestAPI_ShowEntity_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject/org/ns/Nobody")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, api.KindNotFound, body.Errors[0].Kind)
	assert.Equal(t, "Subject with namespace 'ns' and name 'Nobody' not found.", body.Errors[0].Message)
}

func TestAPI_Summary(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/sample/summary")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Counts struct {
			Total int `json:"total"`
		} `json:"counts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Counts.Total)
}

func TestAPI_CountBy(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject/by/sex/count")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total   int `json:"total"`
		Missing int `json:"missing"`
		Values  []struct {
			Value string `json:"value"`
			Count int    `json:"count"`
		} `json:"values"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 251, body.Total)
	assert.Equal(t, 1, body.Missing)
	require.Len(t, body.Values, 1)
	assert.Equal(t, "F", body.Values[0].Value)
	assert.Equal(t, 250, body.Values[0].Count)
}

func TestAPI_CountBy_UnsupportedField(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/file/by/description/count")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, api.KindUnsupportedField, body.Errors[0].Kind)
	assert.Equal(t, "description", body.Errors[0].Field)
}

func TestAPI_InvalidRoute(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/specimen")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, api.KindInvalidRoute, body.Errors[0].Kind)
	assert.Equal(t, "Invalid route: GET /specimen.", body.Errors[0].Message)
}

func TestAPI_MetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/subject?per_page=1")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, ts.URL+"/metrics")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `ccdi_catalog_requests_total{route="GET /subject",status="2xx"}`)
	assert.Contains(t, string(b), `ccdi_catalog_entities_returned_total{entity="subject"}`)
}

func TestAPI_DerivedLinkBase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.NewMemoryStore(testCatalog())
	require.NoError(t, err)
	ts := httptest.NewServer(api.NewServer(st, logger, api.Options{}).Handler())
	t.Cleanup(ts.Close)

	resp := get(t, ts.URL+"/file")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Link"), "<"+ts.URL+"/file?page=1&per_page=100>")
}

func TestAPI_Organizations(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/organization")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []models.Organization{{Identifier: "org", Name: "org"}}, decode[[]models.Organization](t, resp.Body))

	resp = get(t, ts.URL+"/organization/org")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "org", decode[models.Organization](t, resp.Body).Identifier)

	resp = get(t, ts.URL+"/organization/elsewhere")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, api.KindNotFound, body.Errors[0].Kind)
	assert.Equal(t, "Organization with name 'elsewhere' not found.", body.Errors[0].Message)
}

func TestAPI_Namespaces(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := testCatalog()
	c.Organizations = []models.Organization{{Identifier: "org", Name: "Example Organization"}}
	c.Namespaces = []models.Namespace{{
		ID:           models.NamespaceID{Organization: "org", Name: "ns"},
		ContactEmail: "support@example.com",
		Description:  "Test namespace.",
	}}
	c.Files = append(c.Files, models.File{Identifier: models.NewIdentifier("org", "extra", "File2")})
	st, err := store.NewMemoryStore(c)
	require.NoError(t, err)
	ts := httptest.NewServer(api.NewServer(st, logger, api.Options{}).Handler())
	t.Cleanup(ts.Close)

	resp := get(t, ts.URL+"/namespace")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	namespaces := decode[[]models.Namespace](t, resp.Body)
	require.Len(t, namespaces, 2)
	assert.Equal(t, "extra", namespaces[0].ID.Name)
	assert.Equal(t, "ns", namespaces[1].ID.Name)

	resp = get(t, ts.URL+"/namespace/org/ns")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ns := decode[models.Namespace](t, resp.Body)
	assert.Equal(t, "support@example.com", ns.ContactEmail)
	assert.Equal(t, "Test namespace.", ns.Description)

	resp = get(t, ts.URL+"/namespace/org/missing")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[api.Errors](t, resp.Body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Namespace with organization 'org' and name 'missing' not found.", body.Errors[0].Message)

	resp = get(t, ts.URL+"/organization/org")
	defer resp.Body.Close()
	assert.Equal(t, "Example Organization", decode[models.Organization](t, resp.Body).Name)
}

func TestAPI_Info(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/info")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	info := decode[api.Information](t, resp.Body)
	assert.Equal(t, api.Version, info.API.APIVersion)
	assert.Equal(t, api.Version, info.Data.Version.Version)
	assert.NotEmpty(t, info.Server.Owner)
	assert.NotEmpty(t, info.Server.ContactEmail)
	assert.False(t, info.Data.LastUpdated.IsZero())
}

func TestAPI_InfoConfigured(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.NewMemoryStore(testCatalog())
	require.NoError(t, err)

	info := api.DefaultInformation()
	info.Server.Name = "Test Node"
	info.Data.LastUpdated = st.UpdatedAt()
	ts := httptest.NewServer(api.NewServer(st, logger, api.Options{Info: &info}).Handler())
	t.Cleanup(ts.Close)

	resp := get(t, ts.URL+"/info")
	defer resp.Body.Close()
	got := decode[api.Information](t, resp.Body)
	assert.Equal(t, "Test Node", got.Server.Name)
	assert.True(t, st.UpdatedAt().Equal(got.Data.LastUpdated))
}

func TestAPI_MetadataFields(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		entity string
		first  string
		count  int
	}{
		{"subject", "sex", 7},
		{"sample", "disease_phase", 15},
		{"file", "type", 5},
	}
	for _, tc := range tests {
		t.Run(tc.entity, func(t *testing.T) {
			resp := get(t, ts.URL+"/metadata/fields/"+tc.entity)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			body := decode[api.FieldDescriptions](t, resp.Body)
			require.Len(t, body.Fields, tc.count)
			assert.Equal(t, tc.first, body.Fields[0].Path)
			assert.True(t, body.Fields[0].Harmonized)
			assert.Equal(t, "exact", body.Fields[0].Match)
			assert.Contains(t, body.Fields[0].URL, "#"+tc.first)
		})
	}

	resp := get(t, ts.URL+"/metadata/fields/specimen")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
