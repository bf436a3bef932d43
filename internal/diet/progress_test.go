package diet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress_Empty(t *testing.T) {
	p := ComputeProgress(DayProgress{DateISO: "2025-04-07"})
	assert.Zero(t, p.TotalItems)
	assert.Zero(t, p.TotalMeals)
	assert.Zero(t, p.ItemProgress)
	assert.Zero(t, p.MealProgress)
}

func TestComputeProgress(t *testing.T) {
	day := DayProgress{
		DateISO: "2025-04-07",
		Meals: map[string][]DayItem{
			MealBreakfast: {
				{ID: "i1", DishID: "d1", Qty: 1, Checked: true},
				{ID: "i2", DishID: "d2", Qty: 1, Checked: true},
			},
			MealLunch: {
				{ID: "i3", DishID: "d3", Qty: 1, Checked: true},
				{ID: "i4", DishID: "d4", Qty: 1},
			},
			MealDinner: {},
		},
	}

	p := ComputeProgress(day)
	assert.Equal(t, 4, p.TotalItems)
	assert.Equal(t, 3, p.CheckedItems)
	assert.Equal(t, 2, p.TotalMeals, "empty meals do not count")
	assert.Equal(t, 1, p.CompletedMeals)
	assert.InDelta(t, 0.75, p.ItemProgress, 1e-9)
	assert.InDelta(t, 0.5, p.MealProgress, 1e-9)

	assert.GreaterOrEqual(t, p.ItemProgress, 0.0)
	assert.LessOrEqual(t, p.ItemProgress, 1.0)
}

func TestComputeProgress_AllChecked(t *testing.T) {
	day := DayProgress{
		Meals: map[string][]DayItem{
			MealSnack1: {{ID: "i1", DishID: "d1", Qty: 1, Checked: true}},
		},
	}
	p := ComputeProgress(day)
	assert.Equal(t, 1.0, p.ItemProgress)
	assert.Equal(t, 1.0, p.MealProgress)
}
