package weight

import (
	"time"

	"github.com/lucasmr/fitdiario/internal/datekey"
)

// SeedConfig returns the starter height and goal.
func SeedConfig() Config {
	return Config{
		HeightM:  1.72,
		TargetKg: 68,
		StartKg:  74,
	}
}

// SeedEntries returns the starter measurement history, ending today.
func SeedEntries() []Entry {
	return []Entry{
		{DateISO: "2024-11-01", Kg: 74},
		{DateISO: "2024-12-01", Kg: 72.5},
		{DateISO: "2025-01-05", Kg: 71.8},
		{DateISO: "2025-02-02", Kg: 70.6},
		{DateISO: "2025-03-09", Kg: 69.4},
		{DateISO: "2025-04-06", Kg: 68.8},
		{DateISO: datekey.Day(time.Now()), Kg: 68.2},
	}
}
