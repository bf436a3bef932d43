// Package water owns the daily hydration log, its configuration and the
// history of committed past days.
package water

import (
	"math"
	"sort"

	"github.com/lucasmr/fitdiario/internal/datekey"
)

// Log is one day's hydration record. Today's log is the single mutable one;
// committed logs live in the history, unique by date.
type Log struct {
	DateISO  string `json:"dateISO"`
	TargetML int    `json:"targetML"`
	Entries  []int  `json:"entries"`
}

// Config holds the daily target and the quick-add presets.
type Config struct {
	TargetML int   `json:"targetML"`
	Presets  []int `json:"presets"`
}

// DefaultConfig mirrors the app's starter configuration.
func DefaultConfig() Config {
	return Config{
		TargetML: 2000,
		Presets:  []int{220, 250, 300, 330, 500, 550, 1000},
	}
}

func validAmount(ml int) bool {
	return ml > 0 && ml < math.MaxInt32
}

// TotalIntake is the sum of a log's entries, in ml.
func TotalIntake(log Log) int {
	total := 0
	for _, ml := range log.Entries {
		total += ml
	}
	return total
}

// IntakeProgress is the fraction of the log's target reached, capped at 1.
// A zero target yields 0.
func IntakeProgress(log Log) float64 {
	if log.TargetML == 0 {
		return 0
	}
	p := float64(TotalIntake(log)) / float64(log.TargetML)
	return math.Min(1, p)
}

// Streak counts the consecutive most-recent days whose total reached target,
// stopping at the first miss. History order does not matter; it is sorted
// descending by date first.
func Streak(history []Log, target int) int {
	sorted := sortedDescending(history)
	streak := 0
	for _, log := range sorted {
		if TotalIntake(log) < target {
			break
		}
		streak++
	}
	return streak
}

// GroupByMonth buckets history logs by their "YYYY-MM" prefix.
func GroupByMonth(history []Log) map[string][]Log {
	buckets := make(map[string][]Log)
	for _, log := range history {
		month := datekey.Month(log.DateISO)
		buckets[month] = append(buckets[month], log)
	}
	return buckets
}

func sortedDescending(history []Log) []Log {
	sorted := make([]Log, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateISO > sorted[j].DateISO
	})
	return sorted
}
