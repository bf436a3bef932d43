package diet

// Progress is the derived completion state of one day's checklist.
type Progress struct {
	TotalItems     int     `json:"totalItems"`
	CheckedItems   int     `json:"checkedItems"`
	TotalMeals     int     `json:"totalMeals"`
	CompletedMeals int     `json:"completedMeals"`
	ItemProgress   float64 `json:"itemProgress"`
	MealProgress   float64 `json:"mealProgress"`
}

// ComputeProgress derives the completion counters and fractions of a day.
// Only non-empty meals count towards the meal totals; both fractions are 0
// when their denominator is 0.
func ComputeProgress(day DayProgress) Progress {
	var p Progress
	for _, meal := range MealOrder {
		items := day.Meals[meal]
		p.TotalItems += len(items)

		checked := 0
		for _, it := range items {
			if it.Checked {
				checked++
			}
		}
		p.CheckedItems += checked

		if len(items) > 0 {
			p.TotalMeals++
			if checked == len(items) {
				p.CompletedMeals++
			}
		}
	}

	if p.TotalItems > 0 {
		p.ItemProgress = float64(p.CheckedItems) / float64(p.TotalItems)
	}
	if p.TotalMeals > 0 {
		p.MealProgress = float64(p.CompletedMeals) / float64(p.TotalMeals)
	}
	return p
}
