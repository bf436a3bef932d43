package training

import "math"

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Split letters of the weekly resistance division, in week order.
const (
	SplitA = "A"
	SplitB = "B"
	SplitC = "C"
	SplitD = "D"
	SplitE = "E"
)

// SplitOrder is the fixed ordered enumeration of splits.
var SplitOrder = []string{SplitA, SplitB, SplitC, SplitD, SplitE}

// IsValidSplit reports whether split names one of the five letters.
func IsValidSplit(split string) bool {
	for _, s := range SplitOrder {
		if s == split {
			return true
		}
	}
	return false
}

// Session parts of one training day.
const (
	PartAM = "am"
	PartPM = "pm"
)

// CardioBlock is one planned cardio unit in a split's morning part.
type CardioBlock struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Minutes int    `json:"minutes"`
}

// LoadRecord is one dated load measurement of an exercise.
type LoadRecord struct {
	DateISO string  `json:"dateISO"`
	LoadKg  float64 `json:"loadKg"`
}

// Exercise is one resistance exercise inside a split's afternoon part. The
// name, muscles, gif and substitutions are a denormalized snapshot of the
// catalog item referenced by CatalogID, refreshed on catalog edits. Sets,
// reps, rest, load and notes are user-entered and never overwritten by
// catalog changes.
type Exercise struct {
	ID               string       `json:"id"`
	CatalogID        string       `json:"catalogId,omitempty"`
	Name             string       `json:"name"`
	Sets             int          `json:"sets"`
	Reps             string       `json:"reps"`
	RestSec          int          `json:"restSec"`
	LoadKg           float64      `json:"loadKg,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	GifURL           string       `json:"gifUrl,omitempty"`
	Muscles          []string     `json:"muscles,omitempty"`
	SecondaryMuscles []string     `json:"secondaryMuscles,omitempty"`
	Substitutions    []string     `json:"substitutions,omitempty"`
	LoadHistory      []LoadRecord `json:"loadHistory,omitempty"`
}

// ExercisePatch is a partial update of the user-entered Exercise fields;
// nil fields are left untouched.
type ExercisePatch struct {
	Sets    *int     `json:"sets,omitempty"`
	Reps    *string  `json:"reps,omitempty"`
	RestSec *int     `json:"restSec,omitempty"`
	LoadKg  *float64 `json:"loadKg,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

func (e Exercise) applyPatch(patch ExercisePatch) Exercise {
	if patch.Sets != nil && *patch.Sets > 0 {
		e.Sets = *patch.Sets
	}
	if patch.Reps != nil {
		e.Reps = *patch.Reps
	}
	if patch.RestSec != nil && *patch.RestSec >= 0 {
		e.RestSec = *patch.RestSec
	}
	if patch.LoadKg != nil && *patch.LoadKg > 0 && isFinite(*patch.LoadKg) {
		e.LoadKg = *patch.LoadKg
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	return e
}

// DayPlan is one split's plan: a morning cardio part and an afternoon
// resistance part.
type DayPlan struct {
	Split string        `json:"split"`
	AM    []CardioBlock `json:"am"`
	PM    []Exercise    `json:"pm"`
}

// Template maps every split letter to its day plan. It is always complete:
// all five splits are present, empty or not.
type Template map[string]DayPlan

// Log tracks one split's completion state for the rolling week.
type Log struct {
	DateISO         string         `json:"dateISO"`
	Split           string         `json:"split"`
	AmDone          bool           `json:"amDone"`
	PmDone          bool           `json:"pmDone"`
	DoneExercises   []string       `json:"doneExercises"`
	CompletedCardio []string       `json:"completedCardio"`
	SetProgress     map[string]int `json:"setProgress"`
}

// CatalogItem is the canonical exercise library entry from which template
// exercises are composed.
type CatalogItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Muscle           string   `json:"muscle"`
	Muscles          []string `json:"muscles,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	GifURL           string   `json:"gifUrl,omitempty"`
	Substitutions    []string `json:"substitutions,omitempty"`
}

// CatalogFields holds the user-entered fields of a new CatalogItem.
type CatalogFields struct {
	Name             string   `json:"name"`
	Muscle           string   `json:"muscle"`
	Muscles          []string `json:"muscles,omitempty"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	GifURL           string   `json:"gifUrl,omitempty"`
	Substitutions    []string `json:"substitutions,omitempty"`
}

// CatalogPatch is a partial CatalogItem update; nil fields are left untouched.
type CatalogPatch struct {
	Name             *string   `json:"name,omitempty"`
	Muscle           *string   `json:"muscle,omitempty"`
	Muscles          *[]string `json:"muscles,omitempty"`
	SecondaryMuscles *[]string `json:"secondaryMuscles,omitempty"`
	GifURL           *string   `json:"gifUrl,omitempty"`
	Substitutions    *[]string `json:"substitutions,omitempty"`
}

func (c CatalogItem) applyPatch(patch CatalogPatch) CatalogItem {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Muscle != nil {
		c.Muscle = *patch.Muscle
	}
	if patch.Muscles != nil {
		c.Muscles = *patch.Muscles
	}
	if patch.SecondaryMuscles != nil {
		c.SecondaryMuscles = *patch.SecondaryMuscles
	}
	if patch.GifURL != nil {
		c.GifURL = *patch.GifURL
	}
	if patch.Substitutions != nil {
		c.Substitutions = *patch.Substitutions
	}
	return c
}

// CardioKind is one reusable cardio catalog entry.
type CardioKind struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// Display formats for the training page.
const (
	DisplayInline  = "inline"
	DisplayStacked = "stacked"
)

// Preferences holds the display settings of the training page.
type Preferences struct {
	DisplayFormat string            `json:"displayFormat"`
	MergeParts    bool              `json:"mergeParts"`
	ActiveSplit   string            `json:"activeSplit,omitempty"`
	SplitLabels   map[string]string `json:"splitLabels"`
}

// PreferencesPatch is a partial Preferences update; nil fields are left
// untouched and SplitLabels entries are merged key by key.
type PreferencesPatch struct {
	DisplayFormat *string           `json:"displayFormat,omitempty"`
	MergeParts    *bool             `json:"mergeParts,omitempty"`
	ActiveSplit   *string           `json:"activeSplit,omitempty"`
	SplitLabels   map[string]string `json:"splitLabels,omitempty"`
}

func (p Preferences) applyPatch(patch PreferencesPatch) Preferences {
	if patch.DisplayFormat != nil {
		switch *patch.DisplayFormat {
		case DisplayInline, DisplayStacked:
			p.DisplayFormat = *patch.DisplayFormat
		}
	}
	if patch.MergeParts != nil {
		p.MergeParts = *patch.MergeParts
	}
	if patch.ActiveSplit != nil && IsValidSplit(*patch.ActiveSplit) {
		p.ActiveSplit = *patch.ActiveSplit
	}
	if len(patch.SplitLabels) > 0 {
		labels := make(map[string]string, len(p.SplitLabels))
		for split, label := range p.SplitLabels {
			labels[split] = label
		}
		for split, label := range patch.SplitLabels {
			if IsValidSplit(split) {
				labels[split] = label
			}
		}
		p.SplitLabels = labels
	}
	return p
}

// DefaultPreferences returns the training page defaults.
func DefaultPreferences() Preferences {
	labels := make(map[string]string, len(SplitOrder))
	for _, split := range SplitOrder {
		labels[split] = "Treino " + split
	}
	return Preferences{
		DisplayFormat: DisplayInline,
		SplitLabels:   labels,
	}
}

// ResolveCatalogItem returns the catalog entry with the given id. A false
// result means the reference dangles (item deleted) and should render as a
// "removed" placeholder.
func ResolveCatalogItem(catalog []CatalogItem, id string) (CatalogItem, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return CatalogItem{}, false
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func without(list []string, id string) []string {
	kept := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
