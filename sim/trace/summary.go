package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalProducts       int
	ProducedCount       int
	RejectedCount       int
	HaltedCount         int
	MeanTimeInLine      float64     // over produced and rejected exits
	MaxTimeInLine       float64     // over produced and rejected exits
	BranchDistribution  map[int]int // station ID -> products routed through it
	RejectionsByStation map[int]int // station ID -> products rejected there
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		BranchDistribution:  make(map[int]int),
		RejectionsByStation: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalProducts = len(st.Branches)
	for _, b := range st.Branches {
		summary.BranchDistribution[b.Station]++
	}

	exited := 0
	totalTime := 0.0
	for _, e := range st.Exits {
		switch e.Status {
		case "produced":
			summary.ProducedCount++
		case "rejected":
			summary.RejectedCount++
			summary.RejectionsByStation[e.LastStation]++
		case "halted":
			summary.HaltedCount++
			continue
		}
		d := e.Clock - e.CreatedAt
		totalTime += d
		exited++
		if d > summary.MaxTimeInLine {
			summary.MaxTimeInLine = d
		}
	}
	if exited > 0 {
		summary.MeanTimeInLine = totalTime / float64(exited)
	}

	return summary
}
