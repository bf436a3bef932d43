package training

// Progress summarizes how much of the rolling week is done. A "part" is one
// split's morning or afternoon half; only parts with at least one planned
// block or exercise count as available.
type Progress struct {
	AvailableParts int     `json:"availableParts"`
	DoneParts      int     `json:"doneParts"`
	WeekProgress   float64 `json:"weekProgress"`
}

// ComputeProgress returns the fraction of available session parts marked done
// across all five splits.
func ComputeProgress(template Template, week []Log) Progress {
	var p Progress
	for _, split := range SplitOrder {
		plan, ok := template[split]
		if !ok {
			continue
		}
		var entry *Log
		for i := range week {
			if week[i].Split == split {
				entry = &week[i]
				break
			}
		}
		if len(plan.AM) > 0 {
			p.AvailableParts++
			if entry != nil && entry.AmDone {
				p.DoneParts++
			}
		}
		if len(plan.PM) > 0 {
			p.AvailableParts++
			if entry != nil && entry.PmDone {
				p.DoneParts++
			}
		}
	}
	if p.AvailableParts > 0 {
		p.WeekProgress = float64(p.DoneParts) / float64(p.AvailableParts)
	}
	return p
}

// SessionProgress returns the fraction of one split's work units completed.
// A unit is either one cardio block (binary) or one resistance set; sets
// earn partial credit via the log's per-exercise set progress, and an
// exercise marked done without an explicit set count counts as all its sets.
func SessionProgress(plan DayPlan, entry *Log) float64 {
	cardioTotal := len(plan.AM)
	cardioDone := 0
	if entry != nil {
		cardioDone = len(entry.CompletedCardio)
		if cardioDone > cardioTotal {
			cardioDone = cardioTotal
		}
	}

	setsTotal, setsDone := 0, 0
	for _, ex := range plan.PM {
		setsTotal += ex.Sets
		if entry == nil {
			continue
		}
		completed, ok := entry.SetProgress[ex.ID]
		if !ok && contains(entry.DoneExercises, ex.ID) {
			completed = ex.Sets
		}
		if completed > ex.Sets {
			completed = ex.Sets
		}
		setsDone += completed
	}

	totalUnits := cardioTotal + setsTotal
	if totalUnits == 0 {
		return 0
	}
	return float64(cardioDone+setsDone) / float64(totalUnits)
}
