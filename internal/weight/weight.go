package weight

import (
	"math"
	"sort"
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Entry is one dated weight measurement, unique by date.
type Entry struct {
	DateISO string  `json:"dateISO"`
	Kg      float64 `json:"kg"`
}

// Config holds the user's height and weight goal.
type Config struct {
	HeightM  float64 `json:"heightM"`
	TargetKg float64 `json:"targetKg"`
	StartKg  float64 `json:"startKg,omitempty"`
}

// ConfigPatch is a partial Config update; nil fields are left untouched.
type ConfigPatch struct {
	HeightM  *float64 `json:"heightM,omitempty"`
	TargetKg *float64 `json:"targetKg,omitempty"`
	StartKg  *float64 `json:"startKg,omitempty"`
}

func (c Config) applyPatch(patch ConfigPatch) Config {
	if patch.HeightM != nil && *patch.HeightM > 0 && isFinite(*patch.HeightM) {
		c.HeightM = *patch.HeightM
	}
	if patch.TargetKg != nil && *patch.TargetKg > 0 && isFinite(*patch.TargetKg) {
		c.TargetKg = *patch.TargetKg
	}
	if patch.StartKg != nil && *patch.StartKg > 0 && isFinite(*patch.StartKg) {
		c.StartKg = *patch.StartKg
	}
	return c
}

// BMI returns the body mass index, or 0 when height is unset.
func BMI(weightKg, heightM float64) float64 {
	if heightM == 0 {
		return 0
	}
	return weightKg / (heightM * heightM)
}

// Status is a BMI band with its display label and color.
type Status struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// BMIStatus maps a BMI value to its band.
func BMIStatus(value float64) Status {
	switch {
	case value < 18.5:
		return Status{Label: "Abaixo do peso", Color: "#f97316"}
	case value < 25:
		return Status{Label: "Peso ideal", Color: "#22c55e"}
	case value < 30:
		return Status{Label: "Sobrepeso", Color: "#facc15"}
	default:
		return Status{Label: "Obesidade", Color: "#ef4444"}
	}
}

func sortedAscending(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateISO < sorted[j].DateISO
	})
	return sorted
}

// ProgressToTarget returns how far the user has moved from the first recorded
// weight towards the target, clamped to [0,1]. No entries means 0; a start
// weight already at the target means 1.
func ProgressToTarget(entries []Entry, target float64) float64 {
	if len(entries) == 0 {
		return 0
	}
	sorted := sortedAscending(entries)
	start := sorted[0].Kg
	current := sorted[len(sorted)-1].Kg
	totalDelta := math.Abs(start - target)
	if totalDelta == 0 {
		return 1
	}
	currentDelta := math.Abs(current - target)
	p := (totalDelta - currentDelta) / totalDelta
	return math.Max(0, math.Min(1, p))
}

// Stats summarizes the recorded entries.
type Stats struct {
	CurrentKg float64 `json:"currentKg"`
	StartKg   float64 `json:"startKg"`
	BMI       float64 `json:"bmi"`
	Status    Status  `json:"status"`
	Variation float64 `json:"variation"`
	Change    float64 `json:"change"`
	MinKg     float64 `json:"minKg"`
}

// ComputeStats returns the summary over all entries: current and first
// weight, BMI with its band, the mean of consecutive deltas, total change and
// the minimum recorded weight.
func ComputeStats(entries []Entry, config Config) Stats {
	sorted := sortedAscending(entries)
	var stats Stats
	if len(sorted) > 0 {
		stats.StartKg = sorted[0].Kg
		stats.CurrentKg = sorted[len(sorted)-1].Kg
		stats.Change = stats.CurrentKg - stats.StartKg
		stats.MinKg = sorted[0].Kg
		for _, e := range sorted {
			if e.Kg < stats.MinKg {
				stats.MinKg = e.Kg
			}
		}
	}
	stats.BMI = 0
	if len(sorted) > 0 {
		stats.BMI = BMI(stats.CurrentKg, config.HeightM)
	}
	stats.Status = BMIStatus(stats.BMI)
	if len(sorted) > 1 {
		sum := 0.0
		for i := 1; i < len(sorted); i++ {
			sum += sorted[i].Kg - sorted[i-1].Kg
		}
		stats.Variation = sum / float64(len(sorted)-1)
	}
	return stats
}

// ChartPoint is one dated value for the weight chart.
type ChartPoint struct {
	DateISO string  `json:"dateISO"`
	Kg      float64 `json:"kg"`
}

// ChartData returns the entries sorted ascending by date, ready to plot.
func ChartData(entries []Entry) []ChartPoint {
	sorted := sortedAscending(entries)
	points := make([]ChartPoint, 0, len(sorted))
	for _, e := range sorted {
		points = append(points, ChartPoint{DateISO: e.DateISO, Kg: e.Kg})
	}
	return points
}
