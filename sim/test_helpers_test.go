package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testConfig returns the reference line with accidents disabled and a short
// horizon, so tests are not at the mercy of the 0.01% accident draw.
func testConfig(horizon int64) Config {
	cfg := DefaultConfig()
	cfg.Horizon = horizon
	cfg.AccidentRate = 0
	return cfg
}

// newTestFactory builds a factory seeded with seed and fails the test on error.
func newTestFactory(t *testing.T, cfg Config, seed int64, opts ...Option) *Factory {
	t.Helper()
	f, err := NewFactory(cfg, NewRandomSource(NewSimulationKey(seed)), opts...)
	require.NoError(t, err)
	return f
}

// newTestStation builds station 1 of cfg on its own simulator and pool.
func newTestStation(cfg Config, rng RandomSource) (*Station, *Simulator) {
	s := NewSimulator(float64(cfg.Horizon))
	pool := NewResourcePool(s, "supply-1", cfg.SupplyDevices)
	return newStation(0, &cfg, s, rng, pool), s
}

// constRandom returns the same uniform and normal values on every draw.
type constRandom struct {
	uniform float64
	normal  float64
}

func (r constRandom) Float64() float64     { return r.uniform }
func (r constRandom) NormFloat64() float64 { return r.normal }

// accidentAt triggers an accident on exactly one generator tick and never
// consumes a draw.
type accidentAt struct {
	tick int64
}

func (a accidentAt) Occurs(tick int64, _ RandomSource) bool {
	return tick == a.tick
}

// stationIndexCount counts how many products entered station idx.
func stationIndexCount(products []*Product, idx int) int {
	n := 0
	for _, p := range products {
		for _, v := range p.Visited {
			if v == idx {
				n++
			}
		}
	}
	return n
}
