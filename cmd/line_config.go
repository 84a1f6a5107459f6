package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/factory-sim/factory-sim/sim"
)

// LineConfig represents the line.yaml structure. Omitted fields keep the
// values of sim.DefaultConfig.
// All top-level fields must be listed to satisfy KnownFields(true) strict parsing.
type LineConfig struct {
	StationCount     int       `yaml:"station_count"`
	FailureRates     []float64 `yaml:"failure_rates"`
	WorkTimeMean     float64   `yaml:"work_time_mean"`
	FixTimeMean      float64   `yaml:"fix_time_mean"`
	DefectRate       float64   `yaml:"defect_rate"`
	Horizon          int64     `yaml:"horizon"`
	WorkTimeStdDev   float64   `yaml:"work_time_stdev"`
	FixTimeStdDev    float64   `yaml:"fix_time_stdev"`
	ContainerSize    int       `yaml:"container_size"`
	SupplyDevices    int       `yaml:"supply_devices"`
	SupplyTimeMean   float64   `yaml:"supply_time_mean"`
	SupplyTimeStdDev float64   `yaml:"supply_time_stdev"`
	ArrivalInterval  float64   `yaml:"arrival_interval"`
	AccidentRate     float64   `yaml:"accident_rate"`
	SharedSupplyPool bool      `yaml:"shared_supply_pool"`
}

func lineConfigFrom(c sim.Config) LineConfig {
	return LineConfig{
		StationCount:     c.StationCount,
		FailureRates:     c.FailureRates,
		WorkTimeMean:     c.WorkTimeMean,
		FixTimeMean:      c.FixTimeMean,
		DefectRate:       c.DefectRate,
		Horizon:          c.Horizon,
		WorkTimeStdDev:   c.WorkTimeStdDev,
		FixTimeStdDev:    c.FixTimeStdDev,
		ContainerSize:    c.ContainerSize,
		SupplyDevices:    c.SupplyDevices,
		SupplyTimeMean:   c.SupplyTimeMean,
		SupplyTimeStdDev: c.SupplyTimeStdDev,
		ArrivalInterval:  c.ArrivalInterval,
		AccidentRate:     c.AccidentRate,
		SharedSupplyPool: c.SharedSupplyPool,
	}
}

// SimConfig converts the file representation into a sim.Config.
func (lc LineConfig) SimConfig() sim.Config {
	return sim.Config{
		StationCount:     lc.StationCount,
		FailureRates:     lc.FailureRates,
		WorkTimeMean:     lc.WorkTimeMean,
		FixTimeMean:      lc.FixTimeMean,
		DefectRate:       lc.DefectRate,
		Horizon:          lc.Horizon,
		WorkTimeStdDev:   lc.WorkTimeStdDev,
		FixTimeStdDev:    lc.FixTimeStdDev,
		ContainerSize:    lc.ContainerSize,
		SupplyDevices:    lc.SupplyDevices,
		SupplyTimeMean:   lc.SupplyTimeMean,
		SupplyTimeStdDev: lc.SupplyTimeStdDev,
		ArrivalInterval:  lc.ArrivalInterval,
		AccidentRate:     lc.AccidentRate,
		SharedSupplyPool: lc.SharedSupplyPool,
	}
}

// LoadLineConfig parses a line configuration file over the defaults.
// Uses strict field checking: typos must cause errors.
func LoadLineConfig(path string) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, fmt.Errorf("reading line config: %w", err)
	}
	return parseLineConfig(data)
}

func parseLineConfig(data []byte) (sim.Config, error) {
	lc := lineConfigFrom(sim.DefaultConfig())
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&lc); err != nil && !errors.Is(err, io.EOF) {
		return sim.Config{}, fmt.Errorf("parsing line config: %w", err)
	}
	cfg := lc.SimConfig()
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}
