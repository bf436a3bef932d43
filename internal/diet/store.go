package diet

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/datekey"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/telemetry/tracing"
)

// Persisted keys owned by the diet store.
const (
	KeyCatalog      = "diet:catalog"
	KeySelectedDate = "diet:selectedDate"
	KeyWeekly       = "diet:weekly"
	KeyDays         = "diet:days"
)

// State is one immutable snapshot of the diet domain.
type State struct {
	Catalog      []Dish                 `json:"catalog"`
	Weekly       WeeklyTemplate         `json:"weekly"`
	Days         map[string]DayProgress `json:"days"`
	SelectedDate string                 `json:"selectedDate"`
}

// SelectedDay returns the day record for the currently selected date.
func (s State) SelectedDay() (DayProgress, bool) {
	day, ok := s.Days[s.SelectedDate]
	return day, ok
}

// Store owns the dish catalog, the weekly meal template and the per-date
// checklists. Every mutator computes the next snapshot, persists it and
// publishes it to subscribers.
type Store struct {
	state       State
	persist     persistence.Store
	subscribers []func(State)
	now         func() time.Time

	mutex chan struct{} // buffered size 1, used as a lock that notify can run outside of
}

func NewStore(p persistence.Store) *Store {
	s := &Store{
		persist: p,
		now:     time.Now,
		mutex:   make(chan struct{}, 1),
	}

	s.state = State{
		Catalog: []Dish{},
		Weekly:  WeeklyTemplate{},
		Days:    map[string]DayProgress{},
	}
	p.Load(KeyCatalog, &s.state.Catalog)
	p.Load(KeyWeekly, &s.state.Weekly)
	p.Load(KeyDays, &s.state.Days)
	p.Load(KeySelectedDate, &s.state.SelectedDate)
	if s.state.SelectedDate == "" {
		s.state.SelectedDate = datekey.Today()
	}

	return s
}

func (s *Store) lock()   { s.mutex <- struct{}{} }
func (s *Store) unlock() { <-s.mutex }

// Subscribe registers fn to be called with every new snapshot, synchronously,
// after the snapshot was persisted.
func (s *Store) Subscribe(fn func(State)) {
	s.lock()
	defer s.unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(state State) {
	for _, fn := range s.subscribers {
		fn(state)
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.lock()
	defer s.unlock()
	return s.state.clone()
}

// AddDish appends a new dish with a generated id to the catalog.
func (s *Store) AddDish(ctx context.Context, fields DishFields) Dish {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.addDish")
	defer span.End()

	dish := Dish{
		ID:       persistence.UID(),
		Name:     fields.Name,
		Unit:     fields.Unit,
		Kcal:     fields.Kcal,
		Notes:    fields.Notes,
		ImageURL: fields.ImageURL,
	}
	if dish.Unit == "" {
		dish.Unit = "porção"
	}

	s.lock()
	next := s.state.clone()
	next.Catalog = append(next.Catalog, dish)
	s.state = next
	s.persist.Save(KeyCatalog, next.Catalog)
	s.unlock()

	log.Debugf("diet: dish added: [%s] %s", dish.ID, dish.Name)
	s.notify(next)
	return dish
}

// UpdateDish merges patch into the matching catalog entry. Items copied into
// the template or day records are untouched: they reference by id and the
// dish is resolved at render time.
func (s *Store) UpdateDish(ctx context.Context, id string, patch DishPatch) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.updateDish")
	defer span.End()

	s.lock()
	next := s.state.clone()
	found := false
	for i, d := range next.Catalog {
		if d.ID == id {
			next.Catalog[i] = d.applyPatch(patch)
			found = true
			break
		}
	}
	if !found {
		s.unlock()
		log.Tracef("diet: update dish [%s]: not found", id)
		return false
	}
	s.state = next
	s.persist.Save(KeyCatalog, next.Catalog)
	s.unlock()

	s.notify(next)
	return true
}

// RemoveDish removes the dish from the catalog and cascades removal of every
// item referencing it in the weekly template and in all day records. The
// three collections are recomputed together and persisted as one logical
// update, so an interrupted run never leaves a partially cascaded state
// behind in memory.
func (s *Store) RemoveDish(ctx context.Context, id string) {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.removeDish")
	defer span.End()

	s.lock()
	next := s.state.clone()

	catalog := next.Catalog[:0]
	for _, d := range next.Catalog {
		if d.ID != id {
			catalog = append(catalog, d)
		}
	}
	next.Catalog = catalog

	for weekday, plan := range next.Weekly {
		for meal, items := range plan.Meals {
			kept := make([]MealTemplateItem, 0, len(items))
			for _, it := range items {
				if it.DishID != id {
					kept = append(kept, it)
				}
			}
			plan.Meals[meal] = kept
		}
		next.Weekly[weekday] = plan
	}

	for date, day := range next.Days {
		for meal, items := range day.Meals {
			kept := make([]DayItem, 0, len(items))
			for _, it := range items {
				if it.DishID != id {
					kept = append(kept, it)
				}
			}
			day.Meals[meal] = kept
		}
		next.Days[date] = day
	}

	s.state = next
	s.persist.Save(KeyCatalog, next.Catalog)
	s.persist.Save(KeyWeekly, next.Weekly)
	s.persist.Save(KeyDays, next.Days)
	s.unlock()

	log.Debugf("diet: dish [%s] removed, references cascaded", id)
	s.notify(next)
}

// AssignDishToDay appends a new template item to the weekday/meal list,
// creating the weekday plan and meal list on demand.
func (s *Store) AssignDishToDay(ctx context.Context, weekday, meal, dishID string, qty float64) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.assignDishToDay")
	defer span.End()

	if !datekey.IsValidWeekday(weekday) || !IsValidMeal(meal) {
		return false
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 0 || !isFinite(qty) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan, ok := next.Weekly[weekday]
	if !ok {
		plan = DayPlan{Meals: map[string][]MealTemplateItem{}}
	}
	if plan.Meals == nil {
		plan.Meals = map[string][]MealTemplateItem{}
	}
	plan.Meals[meal] = append(plan.Meals[meal], MealTemplateItem{
		ID:     persistence.UID(),
		DishID: dishID,
		Qty:    qty,
	})
	next.Weekly[weekday] = plan
	s.state = next
	s.persist.Save(KeyWeekly, next.Weekly)
	s.unlock()

	s.notify(next)
	return true
}

// SwapMeals exchanges the two meals' item lists wholesale within one weekday.
func (s *Store) SwapMeals(ctx context.Context, weekday, mealA, mealB string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.swapMeals")
	defer span.End()

	if !datekey.IsValidWeekday(weekday) || !IsValidMeal(mealA) || !IsValidMeal(mealB) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan, ok := next.Weekly[weekday]
	if !ok || plan.Meals == nil {
		s.unlock()
		return false
	}
	plan.Meals[mealA], plan.Meals[mealB] = plan.Meals[mealB], plan.Meals[mealA]
	next.Weekly[weekday] = plan
	s.state = next
	s.persist.Save(KeyWeekly, next.Weekly)
	s.unlock()

	s.notify(next)
	return true
}

// SelectDate sets the currently viewed date and ensures its day record
// exists, deriving one from the weekly template (all items unchecked) the
// first time the date is accessed.
func (s *Store) SelectDate(ctx context.Context, dateISO string) DayProgress {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.selectDate")
	defer span.End()

	if dateISO == "" {
		dateISO = datekey.Day(s.now())
	}

	s.lock()
	next := s.state.clone()
	next.SelectedDate = dateISO
	day, ok := next.Days[dateISO]
	if !ok {
		day = deriveDay(next.Weekly, dateISO)
		next.Days[dateISO] = day
		s.persist.Save(KeyDays, next.Days)
		log.Debugf("diet: day [%s] derived from weekly template", dateISO)
	}
	s.state = next
	s.persist.Save(KeySelectedDate, next.SelectedDate)
	s.unlock()

	s.notify(next)
	return day
}

// RegenerateDay forcibly re-derives the date's record from the current
// weekly template, discarding any check state for that date. An empty date
// means the currently selected one.
func (s *Store) RegenerateDay(ctx context.Context, dateISO string) DayProgress {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.regenerateDay")
	defer span.End()

	s.lock()
	next := s.state.clone()
	if dateISO == "" {
		dateISO = next.SelectedDate
	}
	day := deriveDay(next.Weekly, dateISO)
	next.Days[dateISO] = day
	s.state = next
	s.persist.Save(KeyDays, next.Days)
	s.unlock()

	log.Debugf("diet: day [%s] regenerated from weekly template", dateISO)
	s.notify(next)
	return day
}

// ToggleItem flips checked on one item of the selected day's meal.
func (s *Store) ToggleItem(ctx context.Context, meal, itemID string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.toggleItem")
	defer span.End()

	s.lock()
	next := s.state.clone()
	day, ok := next.Days[next.SelectedDate]
	if !ok {
		s.unlock()
		return false
	}
	toggled := false
	items := day.Meals[meal]
	for i, it := range items {
		if it.ID == itemID {
			items[i].Checked = !it.Checked
			toggled = true
			break
		}
	}
	if !toggled {
		s.unlock()
		return false
	}
	next.Days[next.SelectedDate] = day
	s.state = next
	s.persist.Save(KeyDays, next.Days)
	s.unlock()

	s.notify(next)
	return true
}

// ToggleMeal checks every item of the meal, or unchecks every item when all
// of them are already checked.
func (s *Store) ToggleMeal(ctx context.Context, meal string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "diet.toggleMeal")
	defer span.End()

	s.lock()
	next := s.state.clone()
	day, ok := next.Days[next.SelectedDate]
	if !ok {
		s.unlock()
		return false
	}
	items := day.Meals[meal]
	if len(items) == 0 {
		s.unlock()
		return false
	}

	allChecked := true
	for _, it := range items {
		if !it.Checked {
			allChecked = false
			break
		}
	}
	for i := range items {
		items[i].Checked = !allChecked
	}

	next.Days[next.SelectedDate] = day
	s.state = next
	s.persist.Save(KeyDays, next.Days)
	s.unlock()

	s.notify(next)
	return true
}

// deriveDay copies the weekday's template items into a fresh day record,
// all unchecked. Every meal slot is present, empty or not.
func deriveDay(weekly WeeklyTemplate, dateISO string) DayProgress {
	weekday := datekey.WeekdayOfDay(dateISO)
	day := DayProgress{
		DateISO: dateISO,
		Meals:   make(map[string][]DayItem, len(MealOrder)),
	}

	var source map[string][]MealTemplateItem
	if plan, ok := weekly[weekday]; ok {
		source = plan.Meals
	}

	for _, meal := range MealOrder {
		items := make([]DayItem, 0, len(source[meal]))
		for _, it := range source[meal] {
			items = append(items, DayItem{
				ID:     it.ID,
				DishID: it.DishID,
				Qty:    it.Qty,
			})
		}
		day.Meals[meal] = items
	}
	return day
}

func (s State) clone() State {
	next := State{
		Catalog:      make([]Dish, len(s.Catalog)),
		Weekly:       make(WeeklyTemplate, len(s.Weekly)),
		Days:         make(map[string]DayProgress, len(s.Days)),
		SelectedDate: s.SelectedDate,
	}
	copy(next.Catalog, s.Catalog)
	for weekday, plan := range s.Weekly {
		meals := make(map[string][]MealTemplateItem, len(plan.Meals))
		for meal, items := range plan.Meals {
			copied := make([]MealTemplateItem, len(items))
			copy(copied, items)
			meals[meal] = copied
		}
		next.Weekly[weekday] = DayPlan{Meals: meals}
	}
	for date, day := range s.Days {
		meals := make(map[string][]DayItem, len(day.Meals))
		for meal, items := range day.Meals {
			copied := make([]DayItem, len(items))
			copy(copied, items)
			meals[meal] = copied
		}
		next.Days[date] = DayProgress{DateISO: day.DateISO, Meals: meals}
	}
	return next
}
