package water

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalIntake(t *testing.T) {
	assert.Zero(t, TotalIntake(Log{}))
	assert.Equal(t, 1900, TotalIntake(Log{Entries: []int{500, 500, 500, 400}}))
}

func TestIntakeProgress(t *testing.T) {
	// target 2000, three 500s and a 400: 1900 total, 95%
	log := Log{TargetML: 2000, Entries: []int{500, 500, 500, 400}}
	assert.Equal(t, 1900, TotalIntake(log))
	assert.InDelta(t, 0.95, IntakeProgress(log), 1e-9)

	// capped at 1
	log.Entries = append(log.Entries, 1000)
	assert.Equal(t, 1.0, IntakeProgress(log))

	// zero target yields 0
	assert.Zero(t, IntakeProgress(Log{TargetML: 0, Entries: []int{500}}))
}

func TestStreak(t *testing.T) {
	history := []Log{
		{DateISO: "2025-01-01", Entries: []int{2000}},
		{DateISO: "2025-01-03", Entries: []int{2200}},
		{DateISO: "2025-01-02", Entries: []int{1500}}, // miss, out of order on purpose
		{DateISO: "2025-01-04", Entries: []int{2000}},
	}
	// most recent first: 04 hit, 03 hit, 02 miss -> streak 2
	assert.Equal(t, 2, Streak(history, 2000))
	assert.Equal(t, 4, Streak(history, 1000))
	assert.Zero(t, Streak(history, 3000))
	assert.Zero(t, Streak(nil, 2000))
}

func TestGroupByMonth(t *testing.T) {
	history := []Log{
		{DateISO: "2025-01-01"},
		{DateISO: "2025-01-15"},
		{DateISO: "2025-02-01"},
	}
	groups := GroupByMonth(history)
	assert.Len(t, groups, 2)
	assert.Len(t, groups["2025-01"], 2)
	assert.Len(t, groups["2025-02"], 1)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2000, cfg.TargetML)
	assert.Equal(t, []int{220, 250, 300, 330, 500, 550, 1000}, cfg.Presets)
}
