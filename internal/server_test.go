package internal

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lucasmr/fitdiario/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Environment: "development",
		Host:        "localhost",
		Port:        9000,
		MetricsHost: "localhost",
		MetricsPort: 9001,
		StorePath:   filepath.Join(t.TempDir(), "fitdiario.json"),
	}

	server, err := NewServer(NewServerParams{
		Config:      cfg,
		VersionInfo: "test-version",
	})
	require.NoError(t, err)
	require.NotNil(t, server)

	return server
}

func TestServer_Routing(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	t.Run("version", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/version", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "test-version", rr.Body.String())
	})

	t.Run("water state", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/water", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "targetML")
	})

	t.Run("home progress", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/home/progress", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "training")
	})

	t.Run("unknown path", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/bananas", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("origin not allowed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/water", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestServer_MutationThroughRouter(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	req := httptest.NewRequest("POST", "/water/entry", strings.NewReader(`{"ml":500}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	state := server.waterStore.State()
	require.Len(t, state.Today.Entries, 1)
	assert.Equal(t, 500, state.Today.Entries[0])
}
