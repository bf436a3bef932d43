package training

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/datekey"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/telemetry/tracing"
)

// Persisted keys owned by the training store.
const (
	KeyCatalog       = "tr:catalog"
	KeyCardioCatalog = "tr:cardioCat"
	KeyTemplate      = "tr:template"
	KeyWeek          = "tr:week"
	KeyPreferences   = "tr:prefs"
)

// State is one immutable snapshot of the training domain.
type State struct {
	Catalog       []CatalogItem `json:"catalog"`
	CardioCatalog []CardioKind  `json:"cardioCatalog"`
	Template      Template      `json:"template"`
	Week          []Log         `json:"week"`
	Preferences   Preferences   `json:"preferences"`
}

// LogForSplit returns the rolling week's log entry for the split.
func (s State) LogForSplit(split string) (Log, bool) {
	for _, entry := range s.Week {
		if entry.Split == split {
			return entry, true
		}
	}
	return Log{}, false
}

// Store owns the exercise and cardio catalogs, the A..E weekly template, the
// rolling week log and the display preferences. The template is kept complete
// at all times: every split letter has a plan, empty or not.
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
		Catalog:       []CatalogItem{},
		CardioCatalog: []CardioKind{},
		Template:      Template{},
		Week:          []Log{},
		Preferences:   DefaultPreferences(),
	}
	p.Load(KeyCatalog, &s.state.Catalog)
	p.Load(KeyCardioCatalog, &s.state.CardioCatalog)
	p.Load(KeyTemplate, &s.state.Template)
	p.Load(KeyWeek, &s.state.Week)
	p.Load(KeyPreferences, &s.state.Preferences)

	s.state.Template = completeTemplate(s.state.Template)
	if len(s.state.Week) == 0 {
		s.state.Week = freshWeek(s.now())
	}
	if s.state.Preferences.SplitLabels == nil {
		s.state.Preferences.SplitLabels = DefaultPreferences().SplitLabels
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

// AddCatalogExercise appends a new exercise with a generated id to the
// catalog.
func (s *Store) AddCatalogExercise(ctx context.Context, fields CatalogFields) CatalogItem {
	_, span := tracing.GlobalTracer.Start(ctx, "training.addCatalogExercise")
	defer span.End()

	item := CatalogItem{
		ID:               persistence.UID(),
		Name:             fields.Name,
		Muscle:           fields.Muscle,
		Muscles:          fields.Muscles,
		SecondaryMuscles: fields.SecondaryMuscles,
		GifURL:           fields.GifURL,
		Substitutions:    fields.Substitutions,
	}

	s.lock()
	next := s.state.clone()
	next.Catalog = append(next.Catalog, item)
	s.state = next
	s.persist.Save(KeyCatalog, next.Catalog)
	s.unlock()

	log.Debugf("training: catalog exercise added: [%s] %s", item.ID, item.Name)
	s.notify(next)
	return item
}

// UpdateCatalogExercise merges patch into the matching catalog entry and
// refreshes the denormalized snapshot (name, muscles, gif, substitutions) on
// every template exercise referencing it. User-entered sets, reps, rest, load
// and notes on those exercises are never touched.
func (s *Store) UpdateCatalogExercise(ctx context.Context, id string, patch CatalogPatch) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.updateCatalogExercise")
	defer span.End()

	s.lock()
	next := s.state.clone()
	var updated *CatalogItem
	for i, c := range next.Catalog {
		if c.ID == id {
			next.Catalog[i] = c.applyPatch(patch)
			updated = &next.Catalog[i]
			break
		}
	}
	if updated == nil {
		s.unlock()
		log.Tracef("training: update catalog exercise [%s]: not found", id)
		return false
	}

	for split, plan := range next.Template {
		for i, ex := range plan.PM {
			if ex.CatalogID != id {
				continue
			}
			ex.Name = updated.Name
			ex.Muscles = updated.Muscles
			ex.SecondaryMuscles = updated.SecondaryMuscles
			ex.GifURL = updated.GifURL
			ex.Substitutions = updated.Substitutions
			plan.PM[i] = ex
		}
		next.Template[split] = plan
	}

	s.state = next
	s.persist.Save(KeyCatalog, next.Catalog)
	s.persist.Save(KeyTemplate, next.Template)
	s.unlock()

	s.notify(next)
	return true
}

// RemoveCatalogExercise removes the catalog entry and cascades: every
// template exercise referencing it is dropped from its split's pm list, the
// now-dangling ids are scrubbed from every week log's done set and set
// progress, and pmDone is recomputed against the shorter exercise lists. All
// collections are recomputed together and persisted as one logical update.
func (s *Store) RemoveCatalogExercise(ctx context.Context, id string) {
	_, span := tracing.GlobalTracer.Start(ctx, "training.removeCatalogExercise")
	defer span.End()

	s.lock()
	next := s.state.clone()

	catalog := next.Catalog[:0]
	for _, c := range next.Catalog {
		if c.ID != id {
			catalog = append(catalog, c)
		}
	}
	next.Catalog = catalog

	removed := map[string]bool{}
	for split, plan := range next.Template {
		kept := make([]Exercise, 0, len(plan.PM))
		for _, ex := range plan.PM {
			if ex.CatalogID == id {
				removed[ex.ID] = true
				continue
			}
			kept = append(kept, ex)
		}
		plan.PM = kept
		next.Template[split] = plan
	}

	for i, entry := range next.Week {
		done := make([]string, 0, len(entry.DoneExercises))
		for _, exID := range entry.DoneExercises {
			if !removed[exID] {
				done = append(done, exID)
			}
		}
		entry.DoneExercises = done
		for exID := range entry.SetProgress {
			if removed[exID] {
				delete(entry.SetProgress, exID)
			}
		}
		entry.PmDone = allExercisesDone(next.Template[entry.Split], entry)
		next.Week[i] = entry
	}

	s.state = next
	s.persist.Save(KeyCatalog, next.Catalog)
	s.persist.Save(KeyTemplate, next.Template)
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	log.Debugf("training: catalog exercise [%s] removed, %d template references cascaded", id, len(removed))
	s.notify(next)
}

// AddCardioKind appends a new kind to the cardio catalog.
func (s *Store) AddCardioKind(ctx context.Context, kind string) (CardioKind, bool) {
	_, span := tracing.GlobalTracer.Start(ctx, "training.addCardioKind")
	defer span.End()

	if kind == "" {
		return CardioKind{}, false
	}
	item := CardioKind{ID: persistence.UID(), Kind: kind}

	s.lock()
	next := s.state.clone()
	next.CardioCatalog = append(next.CardioCatalog, item)
	s.state = next
	s.persist.Save(KeyCardioCatalog, next.CardioCatalog)
	s.unlock()

	s.notify(next)
	return item, true
}

// RemoveCardioKind deletes a cardio catalog entry. Blocks already placed in
// the template keep their kind string; the catalog only feeds new blocks.
func (s *Store) RemoveCardioKind(ctx context.Context, id string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.removeCardioKind")
	defer span.End()

	s.lock()
	next := s.state.clone()
	kept := next.CardioCatalog[:0]
	found := false
	for _, c := range next.CardioCatalog {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		s.unlock()
		return false
	}
	next.CardioCatalog = kept
	s.state = next
	s.persist.Save(KeyCardioCatalog, next.CardioCatalog)
	s.unlock()

	s.notify(next)
	return true
}

// AddAmBlock appends a cardio block to the split's morning part.
func (s *Store) AddAmBlock(ctx context.Context, split, kind string, minutes int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.addAmBlock")
	defer span.End()

	if !IsValidSplit(split) || kind == "" || minutes <= 0 {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan := next.Template[split]
	plan.AM = append(plan.AM, CardioBlock{
		ID:      persistence.UID(),
		Kind:    kind,
		Minutes: minutes,
	})
	next.Template[split] = plan
	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.unlock()

	s.notify(next)
	return true
}

// RemoveAmBlock drops a cardio block from the split's morning part, scrubs
// it from the week log's completed set and recomputes amDone against the
// shorter block list.
func (s *Store) RemoveAmBlock(ctx context.Context, split, blockID string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.removeAmBlock")
	defer span.End()

	if !IsValidSplit(split) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan := next.Template[split]
	kept := make([]CardioBlock, 0, len(plan.AM))
	found := false
	for _, b := range plan.AM {
		if b.ID == blockID {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		s.unlock()
		return false
	}
	plan.AM = kept
	next.Template[split] = plan

	for i, entry := range next.Week {
		if entry.Split != split {
			continue
		}
		entry.CompletedCardio = without(entry.CompletedCardio, blockID)
		entry.AmDone = allCardioDone(plan, entry)
		next.Week[i] = entry
	}

	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	s.notify(next)
	return true
}

// AddPmExercise appends an exercise to the split's afternoon part,
// snapshotting the catalog item's denormalized fields at this moment. An
// unknown catalog id still creates the exercise, named as a removed
// placeholder, matching the dangling-reference rendering rule.
func (s *Store) AddPmExercise(ctx context.Context, split, catalogID string, sets int, reps string, restSec int) (Exercise, bool) {
	_, span := tracing.GlobalTracer.Start(ctx, "training.addPmExercise")
	defer span.End()

	if !IsValidSplit(split) || sets <= 0 {
		return Exercise{}, false
	}
	if restSec <= 0 {
		restSec = 60
	}

	s.lock()
	next := s.state.clone()

	ex := Exercise{
		ID:        persistence.UID(),
		CatalogID: catalogID,
		Name:      "Exercício",
		Sets:      sets,
		Reps:      reps,
		RestSec:   restSec,
	}
	if item, ok := ResolveCatalogItem(next.Catalog, catalogID); ok {
		ex.Name = item.Name
		ex.Muscles = item.Muscles
		ex.SecondaryMuscles = item.SecondaryMuscles
		ex.GifURL = item.GifURL
		ex.Substitutions = item.Substitutions
	}

	plan := next.Template[split]
	plan.PM = append(plan.PM, ex)
	next.Template[split] = plan
	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.unlock()

	s.notify(next)
	return ex, true
}

// UpdatePmExercise merges patch into the matching template exercise.
func (s *Store) UpdatePmExercise(ctx context.Context, split, id string, patch ExercisePatch) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.updatePmExercise")
	defer span.End()

	if !IsValidSplit(split) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan := next.Template[split]
	found := false
	for i, ex := range plan.PM {
		if ex.ID == id {
			plan.PM[i] = ex.applyPatch(patch)
			found = true
			break
		}
	}
	if !found {
		s.unlock()
		return false
	}
	next.Template[split] = plan

	// A sets change can flip the done threshold for this exercise.
	for i, entry := range next.Week {
		if entry.Split != split {
			continue
		}
		next.Week[i] = reconcileSetProgress(plan, entry)
	}

	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	s.notify(next)
	return true
}

// RemovePmExercise drops the exercise from the split's afternoon part,
// scrubs it from the week log and recomputes pmDone.
func (s *Store) RemovePmExercise(ctx context.Context, split, id string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.removePmExercise")
	defer span.End()

	if !IsValidSplit(split) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan := next.Template[split]
	kept := make([]Exercise, 0, len(plan.PM))
	found := false
	for _, ex := range plan.PM {
		if ex.ID == id {
			found = true
			continue
		}
		kept = append(kept, ex)
	}
	if !found {
		s.unlock()
		return false
	}
	plan.PM = kept
	next.Template[split] = plan

	for i, entry := range next.Week {
		if entry.Split != split {
			continue
		}
		entry.DoneExercises = without(entry.DoneExercises, id)
		delete(entry.SetProgress, id)
		entry.PmDone = allExercisesDone(plan, entry)
		next.Week[i] = entry
	}

	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	s.notify(next)
	return true
}

// Move directions for MovePmExercise.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// MovePmExercise swaps the exercise with its immediate neighbor in list
// order. A move past either boundary is a no-op.
func (s *Store) MovePmExercise(ctx context.Context, split, id, direction string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.movePmExercise")
	defer span.End()

	if !IsValidSplit(split) || (direction != MoveUp && direction != MoveDown) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan := next.Template[split]
	at := -1
	for i, ex := range plan.PM {
		if ex.ID == id {
			at = i
			break
		}
	}
	if at < 0 {
		s.unlock()
		return false
	}
	to := at - 1
	if direction == MoveDown {
		to = at + 1
	}
	if to < 0 || to >= len(plan.PM) {
		s.unlock()
		return false
	}
	plan.PM[at], plan.PM[to] = plan.PM[to], plan.PM[at]
	next.Template[split] = plan
	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.unlock()

	s.notify(next)
	return true
}

// ToggleCardioBlock toggles the block's membership in the split's completed
// cardio set and recomputes amDone as "all morning blocks completed". Block
// ids not planned in the split's AM list are rejected.
func (s *Store) ToggleCardioBlock(ctx context.Context, split, blockID string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.toggleCardioBlock")
	defer span.End()

	if !IsValidSplit(split) {
		return false
	}

	s.lock()
	next := s.state.clone()
	at := weekIndex(next.Week, split)
	if at < 0 {
		s.unlock()
		return false
	}
	planned := false
	for _, block := range next.Template[split].AM {
		if block.ID == blockID {
			planned = true
			break
		}
	}
	if !planned {
		s.unlock()
		return false
	}
	entry := next.Week[at]
	if contains(entry.CompletedCardio, blockID) {
		entry.CompletedCardio = without(entry.CompletedCardio, blockID)
	} else {
		entry.CompletedCardio = append(entry.CompletedCardio, blockID)
	}
	entry.AmDone = allCardioDone(next.Template[split], entry)
	next.Week[at] = entry

	s.state = next
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	s.notify(next)
	return true
}

// ToggleSessionPart flips the coarse amDone/pmDone flag as a bulk override:
// turning a part on force-fills its fine-grained collections (every block id,
// or every exercise id with full set counts), turning it off clears them. It
// never reconciles with individually toggled state.
func (s *Store) ToggleSessionPart(ctx context.Context, split, part string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.toggleSessionPart")
	defer span.End()

	if !IsValidSplit(split) || (part != PartAM && part != PartPM) {
		return false
	}

	s.lock()
	next := s.state.clone()
	at := weekIndex(next.Week, split)
	if at < 0 {
		s.unlock()
		return false
	}
	entry := next.Week[at]
	plan := next.Template[split]

	if part == PartAM {
		entry.AmDone = !entry.AmDone
		if entry.AmDone {
			entry.CompletedCardio = make([]string, 0, len(plan.AM))
			for _, b := range plan.AM {
				entry.CompletedCardio = append(entry.CompletedCardio, b.ID)
			}
		} else {
			entry.CompletedCardio = []string{}
		}
	} else {
		entry.PmDone = !entry.PmDone
		if entry.PmDone {
			entry.DoneExercises = make([]string, 0, len(plan.PM))
			entry.SetProgress = make(map[string]int, len(plan.PM))
			for _, ex := range plan.PM {
				entry.DoneExercises = append(entry.DoneExercises, ex.ID)
				entry.SetProgress[ex.ID] = ex.Sets
			}
		} else {
			entry.DoneExercises = []string{}
			entry.SetProgress = map[string]int{}
		}
	}
	next.Week[at] = entry

	s.state = next
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	log.Debugf("training: split %s part %s bulk-toggled", split, part)
	s.notify(next)
	return true
}

// ToggleExerciseDone toggles the exercise's membership in the split's done
// set. Entering done records full set progress; leaving deletes the progress
// key. pmDone is recomputed either way.
func (s *Store) ToggleExerciseDone(ctx context.Context, split, exerciseID string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.toggleExerciseDone")
	defer span.End()

	if !IsValidSplit(split) {
		return false
	}

	s.lock()
	next := s.state.clone()
	at := weekIndex(next.Week, split)
	if at < 0 {
		s.unlock()
		return false
	}
	entry := next.Week[at]
	plan := next.Template[split]

	if contains(entry.DoneExercises, exerciseID) {
		entry.DoneExercises = without(entry.DoneExercises, exerciseID)
		delete(entry.SetProgress, exerciseID)
	} else {
		entry.DoneExercises = append(entry.DoneExercises, exerciseID)
		for _, ex := range plan.PM {
			if ex.ID == exerciseID {
				if entry.SetProgress == nil {
					entry.SetProgress = map[string]int{}
				}
				entry.SetProgress[exerciseID] = ex.Sets
				break
			}
		}
	}
	entry.PmDone = allExercisesDone(plan, entry)
	next.Week[at] = entry

	s.state = next
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	s.notify(next)
	return true
}

// SetExerciseSetProgress records how many sets of the exercise are completed,
// clamped to [0, sets]. Zero deletes the progress key; reaching the full set
// count marks the exercise done, dropping below it unmarks. pmDone is
// recomputed afterwards.
func (s *Store) SetExerciseSetProgress(ctx context.Context, split, exerciseID string, completed int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.setExerciseSetProgress")
	defer span.End()

	if !IsValidSplit(split) || completed < 0 {
		return false
	}

	s.lock()
	next := s.state.clone()
	at := weekIndex(next.Week, split)
	if at < 0 {
		s.unlock()
		return false
	}
	plan := next.Template[split]
	var target *Exercise
	for i := range plan.PM {
		if plan.PM[i].ID == exerciseID {
			target = &plan.PM[i]
			break
		}
	}
	if target == nil {
		s.unlock()
		return false
	}
	if completed > target.Sets {
		completed = target.Sets
	}

	entry := next.Week[at]
	if entry.SetProgress == nil {
		entry.SetProgress = map[string]int{}
	}
	if completed == 0 {
		delete(entry.SetProgress, exerciseID)
	} else {
		entry.SetProgress[exerciseID] = completed
	}
	if completed >= target.Sets {
		if !contains(entry.DoneExercises, exerciseID) {
			entry.DoneExercises = append(entry.DoneExercises, exerciseID)
		}
	} else {
		entry.DoneExercises = without(entry.DoneExercises, exerciseID)
	}
	entry.PmDone = allExercisesDone(plan, entry)
	next.Week[at] = entry

	s.state = next
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	s.notify(next)
	return true
}

// RecordExerciseLoad sets the exercise's current load and appends a dated
// record to its load history. Load history survives week resets.
func (s *Store) RecordExerciseLoad(ctx context.Context, split, exerciseID string, loadKg float64) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "training.recordExerciseLoad")
	defer span.End()

	if !IsValidSplit(split) || loadKg <= 0 || !isFinite(loadKg) {
		return false
	}

	s.lock()
	next := s.state.clone()
	plan := next.Template[split]
	found := false
	for i, ex := range plan.PM {
		if ex.ID != exerciseID {
			continue
		}
		ex.LoadKg = loadKg
		ex.LoadHistory = append(ex.LoadHistory, LoadRecord{
			DateISO: datekey.Day(s.now()),
			LoadKg:  loadKg,
		})
		plan.PM[i] = ex
		found = true
		break
	}
	if !found {
		s.unlock()
		return false
	}
	next.Template[split] = plan
	s.state = next
	s.persist.Save(KeyTemplate, next.Template)
	s.unlock()

	s.notify(next)
	return true
}

// ResetWeek regenerates the rolling week: one empty log per split, dated
// sequentially starting today. The template, and with it every exercise's
// load history, is untouched.
func (s *Store) ResetWeek(ctx context.Context) []Log {
	_, span := tracing.GlobalTracer.Start(ctx, "training.resetWeek")
	defer span.End()

	s.lock()
	next := s.state.clone()
	next.Week = freshWeek(s.now())
	s.state = next
	s.persist.Save(KeyWeek, next.Week)
	s.unlock()

	log.Debug("training: week log reset")
	s.notify(next)
	return next.Week
}

// SetPreferences merges patch into the display preferences.
func (s *Store) SetPreferences(ctx context.Context, patch PreferencesPatch) Preferences {
	_, span := tracing.GlobalTracer.Start(ctx, "training.setPreferences")
	defer span.End()

	s.lock()
	next := s.state.clone()
	next.Preferences = next.Preferences.applyPatch(patch)
	s.state = next
	s.persist.Save(KeyPreferences, next.Preferences)
	s.unlock()

	s.notify(next)
	return next.Preferences
}

// allCardioDone reports whether the log's completed cardio covers every
// morning block of the plan. An empty morning part counts as not done.
func allCardioDone(plan DayPlan, entry Log) bool {
	if len(plan.AM) == 0 {
		return false
	}
	for _, b := range plan.AM {
		if !contains(entry.CompletedCardio, b.ID) {
			return false
		}
	}
	return true
}

// allExercisesDone reports whether the log's done set covers every afternoon
// exercise of the plan. An empty afternoon part counts as not done.
func allExercisesDone(plan DayPlan, entry Log) bool {
	if len(plan.PM) == 0 {
		return false
	}
	for _, ex := range plan.PM {
		if !contains(entry.DoneExercises, ex.ID) {
			return false
		}
	}
	return true
}

// reconcileSetProgress re-applies the done threshold after an exercise's set
// count changed: recorded progress is clamped to the new count and done
// membership follows from it.
func reconcileSetProgress(plan DayPlan, entry Log) Log {
	for _, ex := range plan.PM {
		completed, ok := entry.SetProgress[ex.ID]
		if !ok {
			continue
		}
		if completed > ex.Sets {
			completed = ex.Sets
			entry.SetProgress[ex.ID] = completed
		}
		if completed >= ex.Sets {
			if !contains(entry.DoneExercises, ex.ID) {
				entry.DoneExercises = append(entry.DoneExercises, ex.ID)
			}
		} else {
			entry.DoneExercises = without(entry.DoneExercises, ex.ID)
		}
	}
	entry.PmDone = allExercisesDone(plan, entry)
	return entry
}

func weekIndex(week []Log, split string) int {
	for i, entry := range week {
		if entry.Split == split {
			return i
		}
	}
	return -1
}

// freshWeek builds the five empty logs of a new rolling week, dated
// sequentially starting at ref.
func freshWeek(ref time.Time) []Log {
	week := make([]Log, 0, len(SplitOrder))
	for i, split := range SplitOrder {
		week = append(week, Log{
			DateISO:         datekey.Day(ref.AddDate(0, 0, i)),
			Split:           split,
			DoneExercises:   []string{},
			CompletedCardio: []string{},
			SetProgress:     map[string]int{},
		})
	}
	return week
}

// completeTemplate fills in any split missing from a loaded template, so the
// template is always complete.
func completeTemplate(t Template) Template {
	if t == nil {
		t = Template{}
	}
	for _, split := range SplitOrder {
		plan, ok := t[split]
		if !ok {
			plan = DayPlan{Split: split, AM: []CardioBlock{}, PM: []Exercise{}}
		}
		plan.Split = split
		if plan.AM == nil {
			plan.AM = []CardioBlock{}
		}
		if plan.PM == nil {
			plan.PM = []Exercise{}
		}
		t[split] = plan
	}
	return t
}

func (s State) clone() State {
	next := State{
		Catalog:       make([]CatalogItem, len(s.Catalog)),
		CardioCatalog: make([]CardioKind, len(s.CardioCatalog)),
		Template:      make(Template, len(s.Template)),
		Week:          make([]Log, len(s.Week)),
		Preferences:   s.Preferences,
	}
	copy(next.Catalog, s.Catalog)
	copy(next.CardioCatalog, s.CardioCatalog)

	for split, plan := range s.Template {
		am := make([]CardioBlock, len(plan.AM))
		copy(am, plan.AM)
		pm := make([]Exercise, len(plan.PM))
		for i, ex := range plan.PM {
			if len(ex.LoadHistory) > 0 {
				history := make([]LoadRecord, len(ex.LoadHistory))
				copy(history, ex.LoadHistory)
				ex.LoadHistory = history
			}
			pm[i] = ex
		}
		next.Template[split] = DayPlan{Split: plan.Split, AM: am, PM: pm}
	}

	for i, entry := range s.Week {
		done := make([]string, len(entry.DoneExercises))
		copy(done, entry.DoneExercises)
		cardio := make([]string, len(entry.CompletedCardio))
		copy(cardio, entry.CompletedCardio)
		progress := make(map[string]int, len(entry.SetProgress))
		for k, v := range entry.SetProgress {
			progress[k] = v
		}
		entry.DoneExercises = done
		entry.CompletedCardio = cardio
		entry.SetProgress = progress
		next.Week[i] = entry
	}

	labels := make(map[string]string, len(s.Preferences.SplitLabels))
	for k, v := range s.Preferences.SplitLabels {
		labels[k] = v
	}
	next.Preferences.SplitLabels = labels

	return next
}
