package diet

import (
	"context"
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

func TestHandler_AddDish(t *testing.T) {
	r, store := testRouterSetup(t)

	req := httptest.NewRequest("POST", "/diet/dish", strings.NewReader(`{"name":"Tapioca","unit":"porção","kcal":280}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var dish Dish
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dish))
	assert.NotEmpty(t, dish.ID)
	assert.Equal(t, "Tapioca", dish.Name)

	assert.Len(t, store.State().Catalog, 1)
}

func TestHandler_AddDish_InvalidInput(t *testing.T) {
	r, _ := testRouterSetup(t)

	req := httptest.NewRequest("POST", "/diet/dish", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("POST", "/diet/dish", strings.NewReader(`{"name":"x"}`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "missing content type")
}

func TestHandler_SelectAndToggle(t *testing.T) {
	r, store := testRouterSetup(t)
	ctx := context.Background()

	dish := store.AddDish(ctx, DishFields{Name: "Frango"})
	require.True(t, store.AssignDishToDay(ctx, "mon", MealLunch, dish.ID, 1))

	// 2025-04-07 is a Monday
	req := httptest.NewRequest("POST", "/diet/day/select", strings.NewReader(`{"dateISO":"2025-04-07"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var day DayProgress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &day))
	require.Len(t, day.Meals[MealLunch], 1)
	itemID := day.Meals[MealLunch][0].ID

	req = httptest.NewRequest("POST", "/diet/day/meal/lunch/item/"+itemID+"/toggle", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &day))
	assert.True(t, day.Meals[MealLunch][0].Checked)

	// unknown item
	req = httptest.NewRequest("POST", "/diet/day/meal/lunch/item/nope/toggle", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// progress reflects the toggle
	req = httptest.NewRequest("GET", "/diet/day/progress", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var p Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 1.0, p.ItemProgress)
}

func TestHandler_RemoveDish(t *testing.T) {
	r, store := testRouterSetup(t)
	ctx := context.Background()

	dish := store.AddDish(ctx, DishFields{Name: "Peixe"})
	require.True(t, store.AssignDishToDay(ctx, "fri", MealDinner, dish.ID, 1))

	req := httptest.NewRequest("DELETE", "/diet/dish/"+dish.ID, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "removed:"+dish.ID, rr.Body.String())

	state := store.State()
	assert.Empty(t, state.Catalog)
	assert.Empty(t, state.Weekly["fri"].Meals[MealDinner])
}
