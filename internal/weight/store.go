package weight

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lucasmr/fitdiario/internal/datekey"
	"github.com/lucasmr/fitdiario/internal/persistence"
	"github.com/lucasmr/fitdiario/internal/telemetry/tracing"
)

// Persisted keys owned by the weight store.
const (
	KeyConfig  = "weight:config"
	KeyEntries = "weight:entries"
)

// State is one immutable snapshot of the weight domain. Entries are kept
// sorted ascending by date.
type State struct {
	Config  Config  `json:"config"`
	Entries []Entry `json:"entries"`
}

// Store owns the height/target config and the dated weight entries.
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
		Entries: []Entry{},
	}
	p.Load(KeyConfig, &s.state.Config)
	p.Load(KeyEntries, &s.state.Entries)
	sort.Slice(s.state.Entries, func(i, j int) bool {
		return s.state.Entries[i].DateISO < s.state.Entries[j].DateISO
	})

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

// UpdateConfig merges patch into the config.
func (s *Store) UpdateConfig(ctx context.Context, patch ConfigPatch) Config {
	_, span := tracing.GlobalTracer.Start(ctx, "weight.updateConfig")
	defer span.End()

	s.lock()
	next := s.state.clone()
	next.Config = next.Config.applyPatch(patch)
	s.state = next
	s.persist.Save(KeyConfig, next.Config)
	s.unlock()

	s.notify(next)
	return next.Config
}

// AddEntry upserts a measurement by date: an entry for the same date is
// replaced, and the list stays sorted ascending. An empty date means today.
func (s *Store) AddEntry(ctx context.Context, kg float64, dateISO string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "weight.addEntry")
	defer span.End()

	if kg <= 0 || !isFinite(kg) {
		return false
	}
	if dateISO == "" {
		dateISO = datekey.Day(s.now())
	}

	s.lock()
	next := s.state.clone()
	kept := make([]Entry, 0, len(next.Entries)+1)
	for _, e := range next.Entries {
		if e.DateISO != dateISO {
			kept = append(kept, e)
		}
	}
	kept = append(kept, Entry{DateISO: dateISO, Kg: kg})
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].DateISO < kept[j].DateISO
	})
	next.Entries = kept
	s.state = next
	s.persist.Save(KeyEntries, next.Entries)
	s.unlock()

	log.Debugf("weight: entry [%s] %.1fkg recorded", dateISO, kg)
	s.notify(next)
	return true
}

// UpdateEntry sets the weight of the entry with the given date.
func (s *Store) UpdateEntry(ctx context.Context, dateISO string, kg float64) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "weight.updateEntry")
	defer span.End()

	if kg <= 0 || !isFinite(kg) {
		return false
	}

	s.lock()
	next := s.state.clone()
	found := false
	for i, e := range next.Entries {
		if e.DateISO == dateISO {
			next.Entries[i].Kg = kg
			found = true
			break
		}
	}
	if !found {
		s.unlock()
		return false
	}
	s.state = next
	s.persist.Save(KeyEntries, next.Entries)
	s.unlock()

	s.notify(next)
	return true
}

// RemoveEntry deletes the entry with the given date.
func (s *Store) RemoveEntry(ctx context.Context, dateISO string) bool {
	_, span := tracing.GlobalTracer.Start(ctx, "weight.removeEntry")
	defer span.End()

	s.lock()
	next := s.state.clone()
	kept := next.Entries[:0]
	found := false
	for _, e := range next.Entries {
		if e.DateISO == dateISO {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		s.unlock()
		return false
	}
	next.Entries = kept
	s.state = next
	s.persist.Save(KeyEntries, next.Entries)
	s.unlock()

	s.notify(next)
	return true
}

func (s State) clone() State {
	next := State{
		Config:  s.Config,
		Entries: make([]Entry, len(s.Entries)),
	}
	copy(next.Entries, s.Entries)
	return next
}
