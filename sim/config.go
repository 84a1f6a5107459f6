package sim

import (
	"errors"
	"fmt"
)

// Config groups every parameter of a single production run. Zero values are
// not defaults: start from DefaultConfig and override.
type Config struct {
	StationCount int       // number of stations on the line (must be >= 1)
	FailureRates []float64 // per-station failure probability, one per station
	WorkTimeMean float64   // mean processing time, shared across stations
	FixTimeMean  float64   // mean repair time, shared across stations
	DefectRate   float64   // per-visit defect probability, shared across stations
	Horizon      int64     // logical time at which the run stops

	WorkTimeStdDev   float64 // std dev of the processing time draw (default 0.2)
	FixTimeStdDev    float64 // std dev of the repair time draw (default 0.5)
	ContainerSize    int     // material units after a resupply (default 40)
	SupplyDevices    int     // resupply devices per pool (default 3)
	SupplyTimeMean   float64 // mean resupply time (default 2)
	SupplyTimeStdDev float64 // std dev of the resupply time draw (default 0.2)
	ArrivalInterval  float64 // time between generated products (default 1)
	AccidentRate     float64 // per-tick accident probability (default 0.0001)
	// SharedSupplyPool switches from one resupply pool per station to a single
	// factory-wide pool of SupplyDevices devices.
	SharedSupplyPool bool
}

// DefaultConfig returns the reference six-station line.
func DefaultConfig() Config {
	return Config{
		StationCount:     6,
		FailureRates:     []float64{0.008, 0.002, 0.02, 0.05, 0.03, 0.01},
		WorkTimeMean:     4,
		FixTimeMean:      3,
		DefectRate:       0.005,
		Horizon:          1000,
		WorkTimeStdDev:   0.2,
		FixTimeStdDev:    0.5,
		ContainerSize:    40,
		SupplyDevices:    3,
		SupplyTimeMean:   2,
		SupplyTimeStdDev: 0.2,
		ArrivalInterval:  1,
		AccidentRate:     0.0001,
	}
}

// Validate reports every inconsistency in the configuration at once.
func (c Config) Validate() error {
	var errs []error
	if c.StationCount < 1 {
		errs = append(errs, fmt.Errorf("station count must be >= 1, got %d", c.StationCount))
	}
	if len(c.FailureRates) != c.StationCount {
		errs = append(errs, fmt.Errorf("expected %d failure rates, got %d", c.StationCount, len(c.FailureRates)))
	}
	for i, r := range c.FailureRates {
		if err := checkProbability(fmt.Sprintf("failure rate of station %d", i+1), r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := checkProbability("defect rate", c.DefectRate); err != nil {
		errs = append(errs, err)
	}
	if err := checkProbability("accident rate", c.AccidentRate); err != nil {
		errs = append(errs, err)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"work time mean", c.WorkTimeMean},
		{"fix time mean", c.FixTimeMean},
		{"work time std dev", c.WorkTimeStdDev},
		{"fix time std dev", c.FixTimeStdDev},
		{"supply time mean", c.SupplyTimeMean},
		{"supply time std dev", c.SupplyTimeStdDev},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %g", f.name, f.v))
		}
	}
	if c.Horizon < 0 {
		errs = append(errs, fmt.Errorf("horizon must be >= 0, got %d", c.Horizon))
	}
	if c.ContainerSize < 1 {
		errs = append(errs, fmt.Errorf("container size must be >= 1, got %d", c.ContainerSize))
	}
	if c.SupplyDevices < 1 {
		errs = append(errs, fmt.Errorf("supply devices must be >= 1, got %d", c.SupplyDevices))
	}
	if c.ArrivalInterval <= 0 {
		errs = append(errs, fmt.Errorf("arrival interval must be > 0, got %g", c.ArrivalInterval))
	}
	return errors.Join(errs...)
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %g", name, p)
	}
	return nil
}
