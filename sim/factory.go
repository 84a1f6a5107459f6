package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/factory-sim/factory-sim/sim/trace"
)

// Factory owns the line: its stations, the product generator, the global
// counters and the production-active flag.
type Factory struct {
	Config   Config
	Stations []*Station
	// Products holds every product ever generated, in creation order.
	Products         []*Product
	RejectedProducts int
	Accidents        int
	// Active is true while production runs; an accident flips it to false once.
	Active bool
	// HaltedAt is the time of the accident, valid when Active is false.
	HaltedAt float64

	sim      *Simulator
	rng      RandomSource
	accident AccidentModel
	pools    []*ResourcePool
	inFlight int
	started  bool
	trace    *trace.SimulationTrace // nil when tracing is disabled
}

// Option customizes a Factory at construction.
type Option func(*Factory)

// WithAccidentModel replaces the probabilistic accident check.
func WithAccidentModel(m AccidentModel) Option {
	return func(f *Factory) {
		f.accident = m
	}
}

// WithTrace records every branch choice and product exit into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(f *Factory) {
		f.trace = st
	}
}

// NewFactory validates cfg and builds the line. Every stochastic draw of the
// run comes from rng.
func NewFactory(cfg Config, rng RandomSource, opts ...Option) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid factory config: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	cfg.FailureRates = append([]float64(nil), cfg.FailureRates...)

	f := &Factory{
		Config:   cfg,
		Active:   true,
		sim:      NewSimulator(float64(cfg.Horizon)),
		rng:      rng,
		accident: ProbabilisticAccidents{Rate: cfg.AccidentRate},
	}
	for _, opt := range opts {
		opt(f)
	}

	var shared *ResourcePool
	if cfg.SharedSupplyPool {
		shared = NewResourcePool(f.sim, "supply", cfg.SupplyDevices)
		f.pools = append(f.pools, shared)
	}
	f.Stations = make([]*Station, cfg.StationCount)
	for i := range f.Stations {
		pool := shared
		if pool == nil {
			pool = NewResourcePool(f.sim, fmt.Sprintf("supply-%d", i+1), cfg.SupplyDevices)
			f.pools = append(f.pools, pool)
		}
		f.Stations[i] = newStation(i, &f.Config, f.sim, rng, pool)
	}
	return f, nil
}

// Simulator exposes the event loop driving this factory.
func (f *Factory) Simulator() *Simulator {
	return f.sim
}

// SupplyPools returns the distinct resupply pools of the line.
func (f *Factory) SupplyPools() []*ResourcePool {
	return f.pools
}

// InFlight returns the number of routing processes that have not finished.
func (f *Factory) InFlight() int {
	return f.inFlight
}

// Run starts the generator, drives the event loop to the horizon (or until
// every process has drained after an accident) and aggregates the results.
func (f *Factory) Run() *Result {
	f.Start()
	f.sim.Run()

	if f.Active {
		logrus.Infof("Production finished at horizon t=%d: %d products, %d rejected",
			f.Config.Horizon, len(f.Products), f.RejectedProducts)
	} else {
		logrus.Infof("Production halted by accident at t=%.0f: %d products, %d rejected",
			f.HaltedAt, len(f.Products), f.RejectedProducts)
	}
	return f.Results()
}

// Start schedules the first generator tick. Calling it again is a no-op.
func (f *Factory) Start() {
	if f.started {
		return
	}
	f.started = true
	logrus.Infof("Starting production: %d stations, horizon=%d", len(f.Stations), f.Config.Horizon)
	f.sim.Schedule(&ArrivalEvent{time: 0, tick: 0, factory: f})
}

// generate is one generator tick: create a product, launch its routing,
// check for an accident and schedule the next tick.
func (f *Factory) generate(tick int64) {
	if !f.Active {
		return
	}
	now := f.sim.Clock
	p := NewProduct(len(f.Products), now, drawBranch(f.rng))
	f.Products = append(f.Products, p)
	if f.trace != nil {
		station := 0
		if len(f.Stations) > branchStations[1] {
			station = p.Branch.Station() + 1
		}
		f.trace.RecordBranch(trace.BranchRecord{ProductID: p.ID, Clock: now, Station: station})
	}
	rp := newRoutingProcess(f, p)
	f.sim.Defer(fmt.Sprintf("route product %d", p.ID), rp.Start)

	f.checkForAccident(tick)
	if f.Active {
		f.sim.Schedule(&ArrivalEvent{time: now + f.Config.ArrivalInterval, tick: tick + 1, factory: f})
	}
}

func (f *Factory) checkForAccident(tick int64) {
	if !f.accident.Occurs(tick, f.rng) {
		return
	}
	f.Accidents++
	f.Active = false
	f.HaltedAt = f.sim.Clock
	logrus.Warnf("[t %10.3f] Accident at tick %d, production stopped", f.sim.Clock, tick)
}

// finish is called exactly once per routing process when it stops advancing.
func (f *Factory) finish(p *Product) {
	f.inFlight--
	if f.trace == nil {
		return
	}
	last := 0
	if n := len(p.Visited); n > 0 {
		last = p.Visited[n-1] + 1
	}
	f.trace.RecordExit(trace.ExitRecord{
		ProductID:   p.ID,
		CreatedAt:   p.CreatedAt,
		Clock:       f.sim.Clock,
		Status:      string(p.Status),
		LastStation: last,
	})
}
