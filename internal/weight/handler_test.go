package weight

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/telemetry/metrics"
)

func testRouterSetup(t *testing.T) (*mux.Router, *Store) {
	t.Helper()
	store := NewStore(persistence.NewMemStore())
	handler := NewHandler(store, metrics.NewTestManager())
	r := mux.NewRouter()
	handler.SetupRoutes(r)
	return r, store
}

func TestHandler_EntryLifecycle(t *testing.T) {
	r, store := testRouterSetup(t)

	req := httptest.NewRequest("POST", "/weight/entry", strings.NewReader(
		`{"kg":74,"dateISO":"2024-11-01"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest("PUT", "/weight/entry/2024-11-01", strings.NewReader(`{"kg":73.5}`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 73.5, store.State().Entries[0].Kg)

	req = httptest.NewRequest("DELETE", "/weight/entry/2024-11-01", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, store.State().Entries)

	req = httptest.NewRequest("DELETE", "/weight/entry/2024-11-01", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_AddEntry_Invalid(t *testing.T) {
	r, _ := testRouterSetup(t)

	req := httptest.NewRequest("POST", "/weight/entry", strings.NewReader(`{"kg":-2}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Stats(t *testing.T) {
	r, _ := testRouterSetup(t)

	req := httptest.NewRequest("PUT", "/weight/config", strings.NewReader(
		`{"heightM":1.72,"targetKg":68}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	for _, body := range []string{
		`{"kg":74,"dateISO":"2024-11-01"}`,
		`{"kg":68.2,"dateISO":"2025-06-01"}`,
	} {
		req = httptest.NewRequest("POST", "/weight/entry", strings.NewReader(body))
		rr = httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	req = httptest.NewRequest("GET", "/weight/stats", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.InDelta(t, 23.05, stats.BMI, 0.005)
	assert.Equal(t, "Peso ideal", stats.Status.Label)
	assert.InDelta(t, (6.0-0.2)/6.0, stats.ProgressToTarget, 1e-9)

	req = httptest.NewRequest("GET", "/weight/chart", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var points []ChartPoint
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &points))
	require.Len(t, points, 2)
	assert.Equal(t, "2024-11-01", points[0].DateISO)
}
