package training

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProgress(t *testing.T) {
	template := completeTemplate(Template{})
	week := freshWeek(testClock())

	// no planned parts at all
	assert.Equal(t, 0.0, ComputeProgress(template, week).WeekProgress)

	planA := template[SplitA]
	planA.AM = []CardioBlock{{ID: "b1", Kind: "Zumba", Minutes: 40}}
	planA.PM = []Exercise{{ID: "e1", Name: "Supino", Sets: 4, Reps: "10"}}
	template[SplitA] = planA

	planB := template[SplitB]
	planB.PM = []Exercise{{ID: "e2", Name: "Puxada", Sets: 3, Reps: "12"}}
	template[SplitB] = planB

	// 3 available parts (A am, A pm, B pm), none done
	p := ComputeProgress(template, week)
	assert.Equal(t, 3, p.AvailableParts)
	assert.Equal(t, 0, p.DoneParts)

	week[0].AmDone = true
	week[1].PmDone = true
	p = ComputeProgress(template, week)
	assert.Equal(t, 2, p.DoneParts)
	assert.InDelta(t, 2.0/3.0, p.WeekProgress, 1e-9)

	// empty parts never count, even when their flag is set
	week[2].AmDone = true
	assert.Equal(t, 2, ComputeProgress(template, week).DoneParts)
}

func TestSessionProgress_FullSplit(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// split A: one 30 min cardio block and two exercises of 4 and 3 sets
	require.True(t, store.AddAmBlock(ctx, SplitA, "Esteira", 30))
	item := store.AddCatalogExercise(ctx, CatalogFields{Name: "Supino", Muscle: "Peito"})
	ex1, _ := store.AddPmExercise(ctx, SplitA, item.ID, 4, "10", 0)
	ex2, _ := store.AddPmExercise(ctx, SplitA, item.ID, 3, "12", 0)

	state := store.State()
	entry, _ := state.LogForSplit(SplitA)
	assert.Equal(t, 0.0, SessionProgress(state.Template[SplitA], &entry))

	block := state.Template[SplitA].AM[0]
	require.True(t, store.ToggleCardioBlock(ctx, SplitA, block.ID))
	entry, _ = store.State().LogForSplit(SplitA)
	assert.True(t, entry.AmDone, "single cardio block completes the part")
	assert.InDelta(t, 1.0/8.0, SessionProgress(store.State().Template[SplitA], &entry), 1e-9)

	require.True(t, store.SetExerciseSetProgress(ctx, SplitA, ex1.ID, 4))
	require.True(t, store.SetExerciseSetProgress(ctx, SplitA, ex2.ID, 3))

	state = store.State()
	entry, _ = state.LogForSplit(SplitA)
	assert.True(t, entry.PmDone)
	assert.Equal(t, 1.0, SessionProgress(state.Template[SplitA], &entry), "(1+4+3)/(1+4+3)")
}

func TestSessionProgress_PartialCredit(t *testing.T) {
	plan := DayPlan{
		Split: SplitA,
		AM:    []CardioBlock{{ID: "b1", Kind: "Bike", Minutes: 20}},
		PM: []Exercise{
			{ID: "e1", Name: "Supino", Sets: 4, Reps: "10"},
			{ID: "e2", Name: "Crucifixo", Sets: 3, Reps: "12"},
		},
	}

	// 2 of 4 sets done, cardio untouched: 2 of 8 units
	entry := Log{Split: SplitA, SetProgress: map[string]int{"e1": 2}}
	assert.InDelta(t, 0.25, SessionProgress(plan, &entry), 1e-9)

	// done membership without a set count earns full sets
	entry = Log{Split: SplitA, DoneExercises: []string{"e2"}, SetProgress: map[string]int{}}
	assert.InDelta(t, 3.0/8.0, SessionProgress(plan, &entry), 1e-9)

	// recorded progress above the set count is capped
	entry = Log{
		Split:           SplitA,
		CompletedCardio: []string{"b1", "stale-block"},
		SetProgress:     map[string]int{"e1": 9},
	}
	assert.InDelta(t, 5.0/8.0, SessionProgress(plan, &entry), 1e-9)

	// no log at all
	assert.Equal(t, 0.0, SessionProgress(plan, nil))

	// empty plan
	assert.Equal(t, 0.0, SessionProgress(DayPlan{Split: SplitB}, &entry))
}
