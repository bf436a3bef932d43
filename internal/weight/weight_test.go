package weight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBMI(t *testing.T) {
	assert.InDelta(t, 23.05, BMI(68.2, 1.72), 0.005)
	assert.Equal(t, 0.0, BMI(70, 0))
}

func TestBMIStatus(t *testing.T) {
	assert.Equal(t, "Abaixo do peso", BMIStatus(18.4).Label)
	assert.Equal(t, "#f97316", BMIStatus(18.4).Color)
	assert.Equal(t, "Peso ideal", BMIStatus(18.5).Label)
	assert.Equal(t, "Peso ideal", BMIStatus(BMI(68.2, 1.72)).Label)
	assert.Equal(t, "Sobrepeso", BMIStatus(25).Label)
	assert.Equal(t, "Obesidade", BMIStatus(30).Label)
	assert.Equal(t, "#ef4444", BMIStatus(35).Color)
}

func TestProgressToTarget(t *testing.T) {
	assert.Equal(t, 0.0, ProgressToTarget(nil, 68))
	assert.Equal(t, 0.0, ProgressToTarget([]Entry{}, 68))

	// start already at the target
	assert.Equal(t, 1.0, ProgressToTarget([]Entry{{DateISO: "2025-01-01", Kg: 68}}, 68))

	// |74-68|=6 total, |68.2-68|=0.2 remaining
	entries := []Entry{
		{DateISO: "2024-11-01", Kg: 74},
		{DateISO: "2025-06-01", Kg: 68.2},
	}
	assert.InDelta(t, (6.0-0.2)/6.0, ProgressToTarget(entries, 68), 1e-9)

	// overshooting past the target clamps to 1
	overshoot := []Entry{
		{DateISO: "2024-11-01", Kg: 74},
		{DateISO: "2025-06-01", Kg: 68},
	}
	assert.Equal(t, 1.0, ProgressToTarget(overshoot, 68))

	// order on the slice does not matter
	reversed := []Entry{entries[1], entries[0]}
	assert.InDelta(t, (6.0-0.2)/6.0, ProgressToTarget(reversed, 68), 1e-9)

	// moving away from the target clamps to 0, never negative
	movedAway := []Entry{
		{DateISO: "2024-11-01", Kg: 74},
		{DateISO: "2025-06-01", Kg: 82},
	}
	assert.Equal(t, 0.0, ProgressToTarget(movedAway, 68))
}

func TestComputeStats(t *testing.T) {
	config := Config{HeightM: 1.72, TargetKg: 68}
	entries := []Entry{
		{DateISO: "2024-11-01", Kg: 74},
		{DateISO: "2024-12-01", Kg: 72.5},
		{DateISO: "2025-01-05", Kg: 71.8},
	}

	stats := ComputeStats(entries, config)
	assert.Equal(t, 74.0, stats.StartKg)
	assert.Equal(t, 71.8, stats.CurrentKg)
	assert.InDelta(t, -2.2, stats.Change, 1e-9)
	assert.Equal(t, 71.8, stats.MinKg)
	// deltas: -1.5 and -0.7, mean -1.1
	assert.InDelta(t, -1.1, stats.Variation, 1e-9)
	assert.InDelta(t, BMI(71.8, 1.72), stats.BMI, 1e-9)
	assert.Equal(t, "Peso ideal", stats.Status.Label)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, Config{HeightM: 1.72})
	assert.Equal(t, 0.0, stats.CurrentKg)
	assert.Equal(t, 0.0, stats.BMI)
	assert.Equal(t, 0.0, stats.Variation)
	assert.Equal(t, "Abaixo do peso", stats.Status.Label)
}

func TestChartData(t *testing.T) {
	points := ChartData([]Entry{
		{DateISO: "2025-02-01", Kg: 70},
		{DateISO: "2025-01-01", Kg: 72},
	})
	assert.Equal(t, []ChartPoint{
		{DateISO: "2025-01-01", Kg: 72},
		{DateISO: "2025-02-01", Kg: 70},
	}, points)
}

func TestSeeds(t *testing.T) {
	config := SeedConfig()
	assert.Equal(t, 1.72, config.HeightM)
	assert.Equal(t, 68.0, config.TargetKg)

	entries := SeedEntries()
	assert.Len(t, entries, 7)
	assert.Equal(t, 74.0, entries[0].Kg)
}
