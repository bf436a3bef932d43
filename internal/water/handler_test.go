package water

import (
	"encoding/json"
	"fmt"
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

func TestHandler_AddEntryAndStats(t *testing.T) {
	r, _ := testRouterSetup(t)

	for _, ml := range []int{500, 500, 500, 400} {
		req := httptest.NewRequest("POST", "/water/entry", strings.NewReader(
			fmt.Sprintf(`{"ml":%d}`, ml)))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	req := httptest.NewRequest("GET", "/water/stats", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1900, stats.TotalToday)
	assert.InDelta(t, 0.95, stats.Progress, 1e-9)
}

func TestHandler_AddEntry_Invalid(t *testing.T) {
	r, _ := testRouterSetup(t)

	req := httptest.NewRequest("POST", "/water/entry", strings.NewReader(`{"ml":-10}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("POST", "/water/entry", strings.NewReader(`not json`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_CommitAndEditHistory(t *testing.T) {
	r, store := testRouterSetup(t)

	req := httptest.NewRequest("POST", "/water/entry", strings.NewReader(`{"ml":2000}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest("POST", "/water/today/commit", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	hist := store.State().History
	require.Len(t, hist, 1)
	date := hist[0].DateISO

	req = httptest.NewRequest("PUT", "/water/history/"+date, strings.NewReader(`{"total":1500}`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int{1500}, store.State().History[0].Entries)

	req = httptest.NewRequest("DELETE", "/water/history/"+date, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, store.State().History)
}
