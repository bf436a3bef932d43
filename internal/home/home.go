// Package home aggregates one representative progress fraction from each
// domain for the dashboard summary. It owns no state of its own and never
// mutates the stores it reads.
package home

import (
	"time"

	"github.com/lucasmr/fitdiario/internal/datekey"
	"github.com/lucasmr/fitdiario/internal/diet"
	"github.com/lucasmr/fitdiario/internal/training"
	"github.com/lucasmr/fitdiario/internal/water"
	"github.com/lucasmr/fitdiario/internal/weight"
)

// Summary is the dashboard view: one fraction in [0,1] per domain.
type Summary struct {
	Diet     float64 `json:"diet"`
	Water    float64 `json:"water"`
	Training float64 `json:"training"`
	Weight   float64 `json:"weight"`
}

// Aggregator reads the four domain stores.
type Aggregator struct {
	diet     *diet.Store
	water    *water.Store
	training *training.Store
	weight   *weight.Store

	now func() time.Time
}

func NewAggregator(d *diet.Store, wa *water.Store, t *training.Store, we *weight.Store) *Aggregator {
	return &Aggregator{
		diet:     d,
		water:    wa,
		training: t,
		weight:   we,
		now:      time.Now,
	}
}

// Summarize computes the current dashboard fractions. A date with no derived
// diet record yet reads as zero progress; it is not derived here.
func (a *Aggregator) Summarize() Summary {
	var summary Summary

	today := datekey.Day(a.now())
	dietState := a.diet.State()
	if day, ok := dietState.Days[today]; ok {
		summary.Diet = diet.ComputeProgress(day).ItemProgress
	}

	summary.Water = water.IntakeProgress(a.water.State().Today)

	trState := a.training.State()
	summary.Training = training.ComputeProgress(trState.Template, trState.Week).WeekProgress

	weState := a.weight.State()
	summary.Weight = weight.ProgressToTarget(weState.Entries, weState.Config.TargetKg)

	return summary
}
