package diet

import "math"

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Meal slot keys, in their fixed daily order.
const (
	MealBreakfast = "breakfast"
	MealSnack1    = "snack1"
	MealLunch     = "lunch"
	MealSnack2    = "snack2"
	MealDinner    = "dinner"
)

// MealOrder is the fixed ordered enumeration of meal slots.
var MealOrder = []string{MealBreakfast, MealSnack1, MealLunch, MealSnack2, MealDinner}

// IsValidMeal reports whether meal names one of the five slots.
func IsValidMeal(meal string) bool {
	for _, m := range MealOrder {
		if m == meal {
			return true
		}
	}
	return false
}

// Dish is a catalog entry; plan and day items reference it by id and resolve
// it at render time, so catalog edits apply retroactively everywhere.
type Dish struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Kcal     float64 `json:"kcal,omitempty"`
	Notes    string  `json:"notes,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// DishFields holds the user-entered fields of a new Dish.
type DishFields struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Kcal     float64 `json:"kcal,omitempty"`
	Notes    string  `json:"notes,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// DishPatch is a partial Dish update; nil fields are left untouched.
type DishPatch struct {
	Name     *string  `json:"name,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Kcal     *float64 `json:"kcal,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
}

func (d Dish) applyPatch(patch DishPatch) Dish {
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Unit != nil {
		d.Unit = *patch.Unit
	}
	if patch.Kcal != nil {
		d.Kcal = *patch.Kcal
	}
	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}
	if patch.ImageURL != nil {
		d.ImageURL = *patch.ImageURL
	}
	return d
}

// MealTemplateItem is one planned serving inside a meal slot of one weekday.
type MealTemplateItem struct {
	ID     string  `json:"id"`
	DishID string  `json:"dishId"`
	Qty    float64 `json:"qty"`
}

// DayPlan is one weekday's plan inside the weekly template.
type DayPlan struct {
	Meals map[string][]MealTemplateItem `json:"meals"`
}

// WeeklyTemplate maps weekday keys (mon..sun) to their day plans.
type WeeklyTemplate map[string]DayPlan

// DayItem is a MealTemplateItem copied into a day record, with check state.
type DayItem struct {
	ID      string  `json:"id"`
	DishID  string  `json:"dishId"`
	Qty     float64 `json:"qty"`
	Checked bool    `json:"checked"`
}

// DayProgress is one calendar date's checklist, derived from the weekly
// template the first time that date is viewed. Its items are fixed at
// creation time; only their checked flags mutate afterwards.
type DayProgress struct {
	DateISO string               `json:"dateISO"`
	Meals   map[string][]DayItem `json:"meals"`
}

// ResolveDish returns the catalog dish with the given id. A false result
// means the reference dangles (dish deleted) and should render as a
// "removed" placeholder.
func ResolveDish(catalog []Dish, dishID string) (Dish, bool) {
	for _, d := range catalog {
		if d.ID == dishID {
			return d, true
		}
	}
	return Dish{}, false
}
