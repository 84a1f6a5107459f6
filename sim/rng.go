package sim

import (
	"math"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === RandomSource ===

// RandomSource is the single stream every stochastic draw in a run consumes:
// branch choice, failure, repair and work durations, resupply duration,
// defect and accident checks. *rand.Rand satisfies it.
//
// Thread-safety: NOT thread-safe. A run is single-goroutine by construction.
type RandomSource interface {
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
	// NormFloat64 returns a standard normal value (mean 0, std dev 1).
	NormFloat64() float64
}

// NewRandomSource returns the default seeded source for a SimulationKey.
func NewRandomSource(key SimulationKey) *rand.Rand {
	return rand.New(rand.NewSource(int64(key)))
}

// absNormal draws |N(mean, stdDev)|. Durations are clamped at the sampling
// boundary by magnitude, never by rejection, so the stream consumes exactly
// one normal draw per duration.
func absNormal(rng RandomSource, mean, stdDev float64) float64 {
	return math.Abs(rng.NormFloat64()*stdDev + mean)
}
