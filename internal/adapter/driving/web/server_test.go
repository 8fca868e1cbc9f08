package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/weekly-usage-report/internal/adapter/driven/export"
	"github.com/diillson/weekly-usage-report/internal/adapter/driven/mapping"
	"github.com/diillson/weekly-usage-report/internal/application/usecase"
	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/testutil"
)

const mappingJSON = `{
  "proj_cust_map": {"P1": "C1", "P2": "C2"},
  "cust_rsgp_map": {"C1": "G1", "C2": "G2"}
}`

func newTestServer(t *testing.T, mappingFile string) (*Server, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	store.Put("mappings.json", mappingJSON)
	mappingRepo := mapping.NewMappingRepository(store)
	exportRepo := export.NewExportRepository(store)
	uc := usecase.NewReportUseCase(store, mappingRepo, exportRepo, &testutil.Console{}, nil)
	return NewServer(uc, mappingRepo, exportRepo, mappingFile, usecase.DefaultGenerateOptions(), nil), store
}

func do(s *Server, method, target, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestReport_CSV(t *testing.T) {
	s, _ := newTestServer(t, "mappings.json")
	body := testutil.ReportText(
		testutil.DataRow("P1", "Planner-2023-Week1", "5"),
		testutil.DataRow("P9", "Planner-2023-Week1", "5"),
	)

	rec := do(s, http.MethodPost, "/api/v1/report", body, "text/plain")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `"Customer Group","202301"`+"\n"+`"G1","5"`+"\n"+`"G2","0"`, rec.Body.String())
	assert.Equal(t, "P9", rec.Header().Get("X-Unresolved-Projects"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "report.csv")
	assert.Equal(t, 1.0, promtest.ToFloat64(s.metrics.runs.WithLabelValues(outcomeOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(s.metrics.rowsCounted))
	assert.Equal(t, 1.0, promtest.ToFloat64(s.metrics.unresolved.WithLabelValues("project")))
}

func TestReport_JSON(t *testing.T) {
	s, _ := newTestServer(t, "mappings.json")
	body := testutil.ReportText(testutil.DataRow("P2", "Builder-2023-Week2", "1.5"))

	rec := do(s, http.MethodPost, "/api/v1/report?format=json", body, "text/plain")
	require.Equal(t, http.StatusOK, rec.Code)

	var result usecase.ReportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	v, ok := result.Table.Value("G2", 202302)
	require.True(t, ok)
	assert.Equal(t, 1.5, v)
	assert.Equal(t, 1, result.Summary.Counted)
}

func TestReport_PDF(t *testing.T) {
	s, _ := newTestServer(t, "")
	body := testutil.ReportText(testutil.DataRow("P2", "Builder-2023-Week2", "1"))

	rec := do(s, http.MethodPost, "/api/v1/report?format=pdf", body, "text/plain")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestReport_NoData(t *testing.T) {
	s, _ := newTestServer(t, "mappings.json")
	body := testutil.ReportText(testutil.DataRow("P1", "Forklift", "1"))

	rec := do(s, http.MethodPost, "/api/v1/report", body, "text/plain")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1.0, promtest.ToFloat64(s.metrics.runs.WithLabelValues(outcomeNoData)))
}

func TestReport_Rejected(t *testing.T) {
	s, _ := newTestServer(t, "mappings.json")

	rec := do(s, http.MethodPost, "/api/v1/report", "\"Event Number\"\n", "text/plain")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "header")
	assert.Equal(t, 1.0, promtest.ToFloat64(s.metrics.runs.WithLabelValues(outcomeRejected)))

	rec = do(s, http.MethodPost, "/api/v1/report", "\"a\" junk\n", "text/plain")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "diagnostics")
}

func TestReport_UnknownFormat(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := do(s, http.MethodPost, "/api/v1/report?format=xlsx", "", "text/plain")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMappings(t *testing.T) {
	s, store := newTestServer(t, "mappings.json")

	rec := do(s, http.MethodGet, "/api/v1/mappings", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap entity.MappingSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "C1", snap.ProjectCustomer["P1"])

	rec = do(s, http.MethodPut, "/api/v1/mappings",
		`{"proj_cust_map":{"P5":"C5"},"cust_rsgp_map":{"C5":"G5"}}`, echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(store.Files["mappings.json"]), "P5")

	rec = do(s, http.MethodPut, "/api/v1/mappings", `{"proj_cust_map":{"P5":""}}`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMappings_PutWithoutFile(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := do(s, http.MethodPut, "/api/v1/mappings", `{}`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/mappings", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := do(s, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(s, http.MethodPost, "/api/v1/report", testutil.ReportText(testutil.DataRow("P1", "Planner-2023-Week1", "2")), "text/plain")
	rec = do(s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `usage_report_runs_total{outcome="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "usage_report_rows_counted_total 1")
}
