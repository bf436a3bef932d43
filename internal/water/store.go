package water

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/datekey"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/telemetry/tracing"
)

// Persisted keys owned by the water store.
const (
	KeyConfig  = "water:config"
	KeyToday   = "water:today"
	KeyHistory = "water:hist"
)

// State is one immutable snapshot of the water domain.
type State struct {
	Config  Config `json:"config"`
	Today   Log    `json:"today"`
	History []Log  `json:"history"`
}

// Store owns the hydration config, today's log and the committed history.
type Store struct {
	state       State
	persist     persistence.Store
	subscribers []func(State)
	now         func() time.Time

	mutex chan struct{}
}

func NewStore(p persistence.Store) *Store {
	s := &Store{
		persist: p,
		now:     time.Now,
		mutex:   make(chan struct{}, 1),
	}

	s.state = State{
		Config:  DefaultConfig(),
		History: []Log{},
	}
	p.Load(KeyConfig, &s.state.Config)
	p.Load(KeyHistory, &s.state.History)
	if !p.Load(KeyToday, &s.state.Today) {
		s.state.Today = Log{
			DateISO:  datekey.Day(s.now()),
			TargetML: s.state.Config.TargetML,
			Entries:  []int{},
		}
	}

	return s
}

func (s *Store) lock()   { s.mutex <- struct{}{} }
func (s *Store) unlock() { <-s.mutex }

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

func (s *Store) State() State {
	s.lock()
	defer s.unlock()
	return s.state.clone()
}

// SetTarget updates the configured daily target and today's log target in
// place. Non-positive targets are a silent no-op.
func (s *Store) SetTarget(ctx context.Context, ml int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "water.setTarget")
	defer span.End()

	if !validAmount(ml) {
		return false
	}

	s.lock()
	next := s.state.clone()
	next.Config.TargetML = ml
	next.Today.TargetML = ml
	s.state = next
	s.persist.Save(KeyConfig, next.Config)
	s.persist.Save(KeyToday, next.Today)
	s.unlock()

	log.Debugf("water: target set to %d ml", ml)
	s.notify(next)
	return true
}

// SetPresets replaces the quick-add presets; non-positive values are dropped.
func (s *Store) SetPresets(ctx context.Context, presets []int) {
	_, span := tracing.GlobalTracer.Start(ctx, "water.setPresets")
	defer span.End()

	valid := make([]int, 0, len(presets))
	for _, ml := range presets {
		if validAmount(ml) {
			valid = append(valid, ml)
		}
	}

	s.lock()
	next := s.state.clone()
	next.Config.Presets = valid
	s.state = next
	s.persist.Save(KeyConfig, next.Config)
	s.unlock()

	s.notify(next)
}

// AddEntry appends one intake entry to today's log, first rolling the log
// over to the current date if it is stale.
func (s *Store) AddEntry(ctx context.Context, ml int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "water.addEntry")
	defer span.End()

	if !validAmount(ml) {
		return false
	}

	s.lock()
	next := s.state.clone()
	next.Today = s.ensureTodayLog(next)
	next.Today.Entries = append(next.Today.Entries, ml)
	s.state = next
	s.persist.Save(KeyToday, next.Today)
	s.unlock()

	s.notify(next)
	return true
}

// UpdateTodayEntry replaces the entry at index; a bad index or amount is a
// silent no-op.
func (s *Store) UpdateTodayEntry(ctx context.Context, index, ml int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "water.updateTodayEntry")
	defer span.End()

	if !validAmount(ml) {
		return false
	}

	s.lock()
	next := s.state.clone()
	if index < 0 || index >= len(next.Today.Entries) {
		s.unlock()
		return false
	}
	next.Today.Entries[index] = ml
	s.state = next
	s.persist.Save(KeyToday, next.Today)
	s.unlock()

	s.notify(next)
	return true
}

// RemoveTodayEntry deletes the entry at index.
func (s *Store) RemoveTodayEntry(ctx context.Context, index int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "water.removeTodayEntry")
	defer span.End()

	s.lock()
	next := s.state.clone()
	if index < 0 || index >= len(next.Today.Entries) {
		s.unlock()
		return false
	}
	next.Today.Entries = append(next.Today.Entries[:index], next.Today.Entries[index+1:]...)
	s.state = next
	s.persist.Save(KeyToday, next.Today)
	s.unlock()

	s.notify(next)
	return true
}

// ResetToday replaces today's log with an empty one at the current target.
func (s *Store) ResetToday(ctx context.Context) {
	_, span := tracing.GlobalTracer.Start(ctx, "water.resetToday")
	defer span.End()

	s.lock()
	next := s.state.clone()
	next.Today = Log{
		DateISO:  datekey.Day(s.now()),
		TargetML: next.Config.TargetML,
		Entries:  []int{},
	}
	s.state = next
	s.persist.Save(KeyToday, next.Today)
	s.unlock()

	log.Debugf("water: today's log reset")
	s.notify(next)
}

// CommitToday upserts today's log into the history, keyed by date
// (replace-if-exists), and keeps history sorted descending by date.
func (s *Store) CommitToday(ctx context.Context) {
	_, span := tracing.GlobalTracer.Start(ctx, "water.commitToday")
	defer span.End()

	s.lock()
	next := s.state.clone()
	next.Today = s.ensureTodayLog(next)

	hist := make([]Log, 0, len(next.History)+1)
	for _, h := range next.History {
		if h.DateISO != next.Today.DateISO {
			hist = append(hist, h)
		}
	}
	hist = append(hist, next.Today)
	next.History = sortedDescending(hist)

	s.state = next
	s.persist.Save(KeyToday, next.Today)
	s.persist.Save(KeyHistory, next.History)
	s.unlock()

	log.Debugf("water: committed [%s] to history", s.state.Today.DateISO)
	s.notify(next)
}

// UpdateHistoryEntry rewrites the history log for the given date with a
// single synthetic entry equal to total. The original itemized breakdown is
// discarded, intentionally.
func (s *Store) UpdateHistoryEntry(ctx context.Context, dateISO string, total int) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "water.updateHistoryEntry")
	defer span.End()

	if !validAmount(total) {
		return false
	}

	s.lock()
	next := s.state.clone()
	found := false
	for i, h := range next.History {
		if h.DateISO == dateISO {
			next.History[i].Entries = []int{total}
			found = true
			break
		}
	}
	if !found {
		s.unlock()
		return false
	}
	s.state = next
	s.persist.Save(KeyHistory, next.History)
	s.unlock()

	s.notify(next)
	return true
}

// RemoveHistoryEntry deletes the history log for the given date.
func (s *Store) RemoveHistoryEntry(ctx context.Context, dateISO string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "water.removeHistoryEntry")
	defer span.End()

	s.lock()
	next := s.state.clone()
	hist := make([]Log, 0, len(next.History))
	for _, h := range next.History {
		if h.DateISO != dateISO {
			hist = append(hist, h)
		}
	}
	if len(hist) == len(next.History) {
		s.unlock()
		return false
	}
	next.History = hist
	s.state = next
	s.persist.Save(KeyHistory, next.History)
	s.unlock()

	s.notify(next)
	return true
}

// ensureTodayLog returns the log to use for "today": the current one when
// its date matches, otherwise a fresh empty log at the configured target.
func (s *Store) ensureTodayLog(state State) Log {
	today := datekey.Day(s.now())
	if state.Today.DateISO == today {
		return state.Today
	}
	log.Debugf("water: stale today log [%s], rolling over to [%s]", state.Today.DateISO, today)
	return Log{
		DateISO:  today,
		TargetML: state.Config.TargetML,
		Entries:  []int{},
	}
}

func (s State) clone() State {
	next := State{
		Config: Config{
			TargetML: s.Config.TargetML,
			Presets:  make([]int, len(s.Config.Presets)),
		},
		Today: Log{
			DateISO:  s.Today.DateISO,
			TargetML: s.Today.TargetML,
			Entries:  make([]int, len(s.Today.Entries)),
		},
		History: make([]Log, len(s.History)),
	}
	copy(next.Config.Presets, s.Config.Presets)
	copy(next.Today.Entries, s.Today.Entries)
	for i, h := range s.History {
		entries := make([]int, len(h.Entries))
		copy(entries, h.Entries)
		next.History[i] = Log{DateISO: h.DateISO, TargetML: h.TargetML, Entries: entries}
	}
	return next
}
