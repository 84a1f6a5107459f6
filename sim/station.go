package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// VisitState is the step a product visit has reached inside a station.
type VisitState string

const (
	VisitMaterialCheck VisitState = "material_check"
	VisitFailureCheck  VisitState = "failure_check"
	VisitProcessing    VisitState = "processing"
	VisitDefectCheck   VisitState = "defect_check"
	VisitDone          VisitState = "done"
)

// Station is one processing unit of the line. Several products may be inside
// a station at once; each visit runs its own state machine while the station
// owns the shared material buffer and statistics.
type Station struct {
	ID           int // 1-based station identity
	FailureRate  float64
	WorkTimeMean float64
	FixTimeMean  float64
	DefectRate   float64

	// Material counts unclaimed units in the buffer. A visit claims its unit at
	// the material check, so the buffer never goes below zero.
	Material       int
	Occupancy      float64 // cumulative processing time
	TotalFixTime   float64 // cumulative repair time
	Downtime       float64 // cumulative time lost to failures
	ProcessedCount int
	DefectCount    int
	ResupplyCount  int

	// Supply is the pool of resupply devices this station draws from.
	Supply *ResourcePool

	sim *Simulator
	rng RandomSource
	cfg *Config

	resupplying     bool
	resupplyWaiters []func()
}

// newStation creates station index i (zero-based) of the line.
func newStation(i int, cfg *Config, s *Simulator, rng RandomSource, supply *ResourcePool) *Station {
	return &Station{
		ID:           i + 1,
		FailureRate:  cfg.FailureRates[i],
		WorkTimeMean: cfg.WorkTimeMean,
		FixTimeMean:  cfg.FixTimeMean,
		DefectRate:   cfg.DefectRate,
		Material:     cfg.ContainerSize,
		Supply:       supply,
		sim:          s,
		rng:          rng,
		cfg:          cfg,
	}
}

func (s *Station) String() string {
	return fmt.Sprintf("station %d", s.ID)
}

// ProcessProduct runs one visit of p through the station. done receives true
// if the product passed the defect check and false if it is defective.
func (s *Station) ProcessProduct(p *Product, done func(ok bool)) {
	v := &stationVisit{station: s, product: p, state: VisitMaterialCheck, done: done}
	v.step()
}

// AwaitingResupply returns the number of visits blocked on an empty buffer.
func (s *Station) AwaitingResupply() int {
	return len(s.resupplyWaiters)
}

// claimMaterial takes one unit from the buffer if any is left.
func (s *Station) claimMaterial() bool {
	if s.Material <= 0 {
		return false
	}
	s.Material--
	return true
}

// awaitResupply parks resume until the buffer has been refilled. Only one
// resupply per station is in flight; later visits join its waiters.
func (s *Station) awaitResupply(resume func()) {
	s.resupplyWaiters = append(s.resupplyWaiters, resume)
	if s.resupplying {
		return
	}
	s.resupplying = true
	s.Supply.Hold(fmt.Sprintf("resupply %s", s),
		func() float64 {
			return absNormal(s.rng, s.cfg.SupplyTimeMean, s.cfg.SupplyTimeStdDev)
		},
		func() {
			s.Material = s.cfg.ContainerSize
			s.ResupplyCount++
			s.resupplying = false
			logrus.Debugf("[t %10.3f] %s resupplied (%d)", s.sim.Clock, s, s.ResupplyCount)
			waiters := s.resupplyWaiters
			s.resupplyWaiters = nil
			for _, w := range waiters {
				w()
			}
		})
}

// stationVisit is the per-product state machine:
// MaterialCheck -> FailureCheck/Repair -> Processing -> DefectCheck -> Done.
type stationVisit struct {
	station  *Station
	product  *Product
	state    VisitState
	workTime float64
	done     func(ok bool)
}

// step advances the visit until it suspends or finishes.
func (v *stationVisit) step() {
	s := v.station
	for {
		switch v.state {
		case VisitMaterialCheck:
			if !s.claimMaterial() {
				s.awaitResupply(v.step)
				return
			}
			v.state = VisitFailureCheck

		case VisitFailureCheck:
			v.state = VisitProcessing
			if s.rng.Float64() < s.FailureRate {
				fixTime := absNormal(s.rng, s.FixTimeMean, s.cfg.FixTimeStdDev)
				s.TotalFixTime += fixTime
				s.Downtime += fixTime
				logrus.Debugf("[t %10.3f] %s failed, repair %.3f", s.sim.Clock, s, fixTime)
				s.sim.Timeout(fixTime, "repair", v.step)
				return
			}

		case VisitProcessing:
			v.workTime = absNormal(s.rng, s.WorkTimeMean, s.cfg.WorkTimeStdDev)
			v.state = VisitDefectCheck
			s.sim.Timeout(v.workTime, "processing", func() {
				s.ProcessedCount++
				s.Occupancy += v.workTime
				v.step()
			})
			return

		case VisitDefectCheck:
			v.state = VisitDone
			ok := s.rng.Float64() >= s.DefectRate
			if !ok {
				s.DefectCount++
			}
			v.done(ok)
			return

		default:
			panic(fmt.Sprintf("%s: product %d stepped in state %s", s, v.product.ID, v.state))
		}
	}
}
