package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/factory-sim/factory-sim/sim/batch"
)

var (
	batchDays        int    // Number of simulated days
	batchStartDate   string // First simulated day (YYYY-MM-DD)
	batchOutputPath  string // JSON output file
	batchMetricsFile string // Prometheus textfile output path
)

// batchCmd runs one simulation per calendar day and writes the dated records.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the simulation once per day and write dated results to JSON",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		start, err := time.Parse(batch.DateLayout, batchStartDate)
		if err != nil {
			logrus.Fatalf("Invalid --start-date %q: %v", batchStartDate, err)
		}

		days, err := batch.Run(cfg, batch.Options{Start: start, Days: batchDays, Seed: seed})
		if err != nil {
			logrus.Fatalf("Batch failed: %v", err)
		}
		if err := writeBatchFile(batchOutputPath, days); err != nil {
			logrus.Fatalf("%v", err)
		}
		if batchMetricsFile != "" {
			if err := batch.WriteMetricsTextfile(batchMetricsFile, days); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		summary := batch.Summarize(days)
		logrus.Infof("Wrote %d days to %s", len(days), batchOutputPath)
		logrus.Infof("Final production %.1f +/- %.1f per day (trend %+.2f/day), faulty rate %.4f, halted on %d days",
			summary.FinalProduction.Mean, summary.FinalProduction.StdDev, summary.ProductionTrend,
			summary.FaultyProductRate.Mean, summary.HaltedDays)
	},
}

// writeBatchFile writes the records to path, creating parent directories.
func writeBatchFile(path string, days []batch.DailyResult) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	return batch.WriteJSON(file, days)
}

func init() {
	defaults := batch.DefaultOptions()
	batchCmd.Flags().IntVar(&batchDays, "days", defaults.Days, "Number of days to simulate")
	batchCmd.Flags().StringVar(&batchStartDate, "start-date", defaults.Start.Format(batch.DateLayout), "First simulated day (YYYY-MM-DD)")
	batchCmd.Flags().StringVar(&batchOutputPath, "output", "data/data.json", "Path of the JSON results file")
	batchCmd.Flags().StringVar(&batchMetricsFile, "metrics-file", "", "Also write the results in Prometheus text format to this path")

	rootCmd.AddCommand(batchCmd)
}
