package diet

import "fmt"

// SeedCatalog is the starter dish catalog.
func SeedCatalog() []Dish {
	return []Dish{
		{ID: "dish-tapioca", Name: "Tapioca recheada", Unit: "porção", Kcal: 280, Notes: "Recheio com ovos mexidos"},
		{ID: "dish-omelete", Name: "Omelete de claras", Unit: "porção", Kcal: 210},
		{ID: "dish-frutas", Name: "Mix de frutas", Unit: "tigela", Kcal: 150},
		{ID: "dish-cafe", Name: "Café sem açúcar", Unit: "xícara", Kcal: 2},
		{ID: "dish-iogurte", Name: "Iogurte natural", Unit: "copinho", Kcal: 110},
		{ID: "dish-mixnuts", Name: "Mix de nuts", Unit: "porção", Kcal: 180},
		{ID: "dish-frango", Name: "Peito de frango grelhado", Unit: "filé", Kcal: 240},
		{ID: "dish-arroz", Name: "Arroz integral", Unit: "concha", Kcal: 150},
		{ID: "dish-feijao", Name: "Feijão preto", Unit: "concha", Kcal: 120},
		{ID: "dish-salada", Name: "Salada verde", Unit: "porção", Kcal: 60},
		{ID: "dish-suco", Name: "Suco verde", Unit: "copo", Kcal: 90},
		{ID: "dish-wrap", Name: "Wrap integral com frango", Unit: "unidade", Kcal: 320},
		{ID: "dish-whey", Name: "Shake de whey", Unit: "copo", Kcal: 180},
		{ID: "dish-banana", Name: "Banana", Unit: "unidade", Kcal: 90},
		{ID: "dish-saladafrutas", Name: "Salada de frutas", Unit: "tigela", Kcal: 170},
		{ID: "dish-sopa", Name: "Sopa de legumes", Unit: "tigela", Kcal: 210},
		{ID: "dish-peixe", Name: "Filé de peixe assado", Unit: "filé", Kcal: 220},
		{ID: "dish-batata", Name: "Batata doce assada", Unit: "porção", Kcal: 160},
		{ID: "dish-cha", Name: "Chá de camomila", Unit: "xícara", Kcal: 0},
	}
}

// SeedWeekly is the starter weekly meal template.
func SeedWeekly() WeeklyTemplate {
	// the two lunch/dinner rotations of the starter plan
	fullLunch := []string{"dish-frango", "dish-arroz", "dish-feijao", "dish-salada"}
	lightLunch := []string{"dish-frango", "dish-arroz", "dish-salada"}
	fishDinner := []string{"dish-peixe", "dish-batata", "dish-salada", "dish-cha"}
	soupDinner := []string{"dish-sopa", "dish-salada", "dish-cha"}

	tapiocaDay := map[string][]string{
		MealBreakfast: {"dish-tapioca", "dish-cafe", "dish-frutas"},
		MealSnack1:    {"dish-iogurte", "dish-mixnuts"},
		MealLunch:     fullLunch,
		MealSnack2:    {"dish-whey", "dish-banana"},
		MealDinner:    fishDinner,
	}
	omeleteDay := map[string][]string{
		MealBreakfast: {"dish-omelete", "dish-cafe", "dish-frutas"},
		MealSnack1:    {"dish-iogurte", "dish-mixnuts"},
		MealLunch:     lightLunch,
		MealSnack2:    {"dish-wrap", "dish-suco"},
		MealDinner:    soupDinner,
	}

	days := map[string]map[string][]string{
		"mon": tapiocaDay,
		"tue": omeleteDay,
		"wed": tapiocaDay,
		"thu": omeleteDay,
		"fri": tapiocaDay,
		"sat": {
			MealBreakfast: {"dish-saladafrutas", "dish-cafe"},
			MealSnack1:    {"dish-mixnuts"},
			MealLunch:     lightLunch,
			MealSnack2:    {"dish-whey", "dish-banana"},
			MealDinner:    {"dish-sopa", "dish-cha"},
		},
		"sun": {
			MealBreakfast: {"dish-saladafrutas", "dish-cafe"},
			MealSnack1:    {"dish-iogurte"},
			MealLunch:     {"dish-peixe", "dish-batata", "dish-salada"},
			MealSnack2:    {"dish-wrap", "dish-suco"},
			MealDinner:    {"dish-sopa", "dish-cha"},
		},
	}

	weekly := make(WeeklyTemplate, len(days))
	for weekday, mealDishes := range days {
		plan := DayPlan{Meals: make(map[string][]MealTemplateItem, len(MealOrder))}
		for _, meal := range MealOrder {
			items := make([]MealTemplateItem, 0, len(mealDishes[meal]))
			for i, dishID := range mealDishes[meal] {
				items = append(items, MealTemplateItem{
					ID:     fmt.Sprintf("%s-%s-%d", weekday, meal, i+1),
					DishID: dishID,
					Qty:    1,
				})
			}
			plan.Meals[meal] = items
		}
		weekly[weekday] = plan
	}
	return weekly
}
