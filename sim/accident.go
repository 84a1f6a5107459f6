package sim

// AccidentModel decides, once per generator tick, whether a factory-wide
// accident halts production.
type AccidentModel interface {
	Occurs(tick int64, rng RandomSource) bool
}

// ProbabilisticAccidents triggers an accident with probability Rate per tick.
type ProbabilisticAccidents struct {
	Rate float64
}

// Occurs draws one uniform value from rng.
func (a ProbabilisticAccidents) Occurs(_ int64, rng RandomSource) bool {
	return rng.Float64() < a.Rate
}
