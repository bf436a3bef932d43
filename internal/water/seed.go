package water

// SeedHistory is a sample week of committed hydration logs.
func SeedHistory() []Log {
	return []Log{
		{DateISO: "2025-01-01", TargetML: 2000, Entries: []int{300, 300, 500, 500, 400}},
		{DateISO: "2025-01-02", TargetML: 2000, Entries: []int{500, 500, 500, 300}},
		{DateISO: "2025-01-03", TargetML: 2000, Entries: []int{330, 330, 500, 500}},
		{DateISO: "2025-01-04", TargetML: 2000, Entries: []int{250, 250, 500, 500, 250}},
		{DateISO: "2025-01-05", TargetML: 2000, Entries: []int{500, 500, 500, 500}},
		{DateISO: "2025-01-06", TargetML: 2000, Entries: []int{330, 330, 500, 330}},
		{DateISO: "2025-01-07", TargetML: 2000, Entries: []int{220, 220, 330, 330, 500, 400}},
	}
}
