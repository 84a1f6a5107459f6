// Package batch runs the production simulation once per calendar day and
// exports the daily records as JSON and Prometheus metrics.
package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/factory-sim/factory-sim/sim"
)

// DateLayout is the ISO calendar date format used for day labels.
const DateLayout = "2006-01-02"

// DailyResult tags one run's Result with the day it simulates.
type DailyResult struct {
	Date    string      `json:"date"`
	Results *sim.Result `json:"results"`
}

// Options controls a multi-day batch.
type Options struct {
	Start time.Time // first simulated day
	Days  int       // number of days to simulate
	Seed  int64     // day i is seeded with Seed+i
	// FactoryOptions are applied to every day's factory.
	FactoryOptions []sim.Option
}

// DefaultOptions mirrors the reference batch: 40 days starting 2025-03-15.
func DefaultOptions() Options {
	return Options{
		Start: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		Days:  40,
		Seed:  42,
	}
}

// Run simulates opts.Days consecutive days with cfg and returns the records
// in date order.
func Run(cfg sim.Config, opts Options) ([]DailyResult, error) {
	if opts.Days < 0 {
		return nil, fmt.Errorf("days must be >= 0, got %d", opts.Days)
	}
	days := make([]DailyResult, 0, opts.Days)
	for i := 0; i < opts.Days; i++ {
		date := opts.Start.AddDate(0, 0, i).Format(DateLayout)
		key := sim.NewSimulationKey(opts.Seed + int64(i))
		f, err := sim.NewFactory(cfg, sim.NewRandomSource(key), opts.FactoryOptions...)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", date, err)
		}
		res := f.Run()
		logrus.Debugf("day %s: final production %d, rejected %d", date, res.FinalProduction, res.RejectedProducts)
		days = append(days, DailyResult{Date: date, Results: res})
	}
	return days, nil
}

// WriteJSON writes the records as an ordered JSON list.
func WriteJSON(w io.Writer, days []DailyResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "   ")
	if err := enc.Encode(days); err != nil {
		return fmt.Errorf("encoding batch results: %w", err)
	}
	return nil
}
