package home

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lucasmr/fitdiario/internal/diet"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/training"
	"github.com/lucasmr/fitdiario/internal/water"
	"github.com/lucasmr/fitdiario/internal/weight"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestAggregator(t *testing.T) (*Aggregator, *diet.Store, *water.Store, *training.Store, *weight.Store) {
	t.Helper()
	mem := persistence.NewMemStore()
	dietStore := diet.NewStore(mem)
	waterStore := water.NewStore(mem)
	trainingStore := training.NewStore(mem)
	weightStore := weight.NewStore(mem)

	a := NewAggregator(dietStore, waterStore, trainingStore, weightStore)
	a.now = func() time.Time {
		return time.Date(2025, 4, 7, 10, 0, 0, 0, time.UTC) // a Monday
	}
	return a, dietStore, waterStore, trainingStore, weightStore
}

func TestSummarize_Empty(t *testing.T) {
	a, _, _, _, _ := newTestAggregator(t)
	assert.Equal(t, Summary{}, a.Summarize())
}

func TestSummarize(t *testing.T) {
	a, dietStore, waterStore, trainingStore, weightStore := newTestAggregator(t)
	ctx := context.Background()

	// diet: a two item breakfast for monday, one item checked
	dish := dietStore.AddDish(ctx, diet.DishFields{Name: "Ovos mexidos"})
	require.True(t, dietStore.AssignDishToDay(ctx, "mon", diet.MealBreakfast, dish.ID, 1))
	require.True(t, dietStore.AssignDishToDay(ctx, "mon", diet.MealBreakfast, dish.ID, 2))
	day := dietStore.SelectDate(ctx, "2025-04-07")
	require.True(t, dietStore.ToggleItem(ctx, diet.MealBreakfast, day.Meals[diet.MealBreakfast][0].ID))

	// water: half of the 2000ml default target
	require.True(t, waterStore.AddEntry(ctx, 1000))

	// training: one of split A's two planned parts completed
	require.True(t, trainingStore.AddAmBlock(ctx, training.SplitA, "Zumba", 40))
	item := trainingStore.AddCatalogExercise(ctx, training.CatalogFields{Name: "Supino", Muscle: "Peito"})
	_, ok := trainingStore.AddPmExercise(ctx, training.SplitA, item.ID, 4, "10", 0)
	require.True(t, ok)
	require.True(t, trainingStore.ToggleSessionPart(ctx, training.SplitA, training.PartAM))

	// weight: from 74 to 71, target 68
	target := 68.0
	weightStore.UpdateConfig(ctx, weight.ConfigPatch{TargetKg: &target})
	require.True(t, weightStore.AddEntry(ctx, 74, "2024-11-01"))
	require.True(t, weightStore.AddEntry(ctx, 71, "2025-04-01"))

	summary := a.Summarize()
	assert.InDelta(t, 0.5, summary.Diet, 1e-9)
	assert.InDelta(t, 0.5, summary.Water, 1e-9)
	assert.InDelta(t, 0.5, summary.Training, 1e-9)
	assert.InDelta(t, 0.5, summary.Weight, 1e-9)
}

func TestHandler_Progress(t *testing.T) {
	a, _, waterStore, _, _ := newTestAggregator(t)
	require.True(t, waterStore.AddEntry(context.Background(), 500))

	r := mux.NewRouter()
	NewHandler(a).SetupRoutes(r)

	req := httptest.NewRequest("GET", "/home/progress", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var summary Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.InDelta(t, 0.25, summary.Water, 1e-9)
	assert.Equal(t, 0.0, summary.Diet)
}
