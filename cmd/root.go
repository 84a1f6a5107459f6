package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/factory-sim/factory-sim/sim"
	"github.com/factory-sim/factory-sim/sim/batch"
	"github.com/factory-sim/factory-sim/sim/trace"
)

// envPrefix is prepended to flag names for environment overrides,
// e.g. FACTORYSIM_SEED or FACTORYSIM_SHARED_SUPPLY_POOL.
const envPrefix = "FACTORYSIM"

var (
	// CLI flags shared by every subcommand
	seed             int64  // Seed for the run's random source
	horizon          int64  // Simulation horizon (logical time units)
	logLevel         string // Log verbosity level
	lineConfigPath   string // Path to the line.yaml configuration
	sharedSupplyPool bool   // One factory-wide resupply pool instead of one per station

	// CLI flags for run
	jsonOutput  bool   // Print the result record as JSON
	metricsFile string // Prometheus textfile output path
	runDate     string // Date label for exported metrics
	traceLevel  string // Product trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "factory-sim",
	Short: "Discrete-event simulator for a production line",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnvOverrides(cmd.Flags()); err != nil {
			return err
		}
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd executes a single simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the production simulation once",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation with seed=%d, horizon=%d, stations=%d", seed, cfg.Horizon, cfg.StationCount)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid --trace-level %q. Valid levels: none, products", traceLevel)
		}
		var st *trace.SimulationTrace
		var opts []sim.Option
		if trace.TraceLevel(traceLevel) == trace.TraceLevelProducts {
			st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelProducts})
			opts = append(opts, sim.WithTrace(st))
		}

		startTime := time.Now()
		res, err := simulate(cfg, seed, opts...)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeResult(cmd.OutOrStdout(), res, jsonOutput); err != nil {
			logrus.Fatalf("%v", err)
		}
		if st != nil {
			printTraceSummary(cmd.ErrOrStderr(), trace.Summarize(st))
		}
		if metricsFile != "" {
			days := []batch.DailyResult{{Date: runDate, Results: res}}
			if err := batch.WriteMetricsTextfile(metricsFile, days); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// applyEnvOverrides sets every flag the user did not pass from its
// FACTORYSIM_* environment variable, if present.
func applyEnvOverrides(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := flags.Set(f.Name, v.GetString(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("%s_%s: %w", envPrefix, strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")), err))
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// resolveConfig loads the line config (or the defaults) and applies flags
// the user set explicitly. Flags left at their defaults never overwrite the file.
func resolveConfig(flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if lineConfigPath != "" {
		loaded, err := LoadLineConfig(lineConfigPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("shared-supply-pool") {
		cfg.SharedSupplyPool = sharedSupplyPool
	}
	return cfg, cfg.Validate()
}

// simulate runs one production run seeded with seed.
func simulate(cfg sim.Config, seed int64, opts ...sim.Option) (*sim.Result, error) {
	f, err := sim.NewFactory(cfg, sim.NewRandomSource(sim.NewSimulationKey(seed)), opts...)
	if err != nil {
		return nil, err
	}
	return f.Run(), nil
}

// writeResult prints the result as a summary table or as JSON.
func writeResult(w io.Writer, res *sim.Result, asJSON bool) error {
	if !asJSON {
		res.Print(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// printTraceSummary writes the product trace summary; run sends it to stderr.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Products traced        : %d\n", ts.TotalProducts)
	fmt.Fprintf(w, "Produced / rejected    : %d / %d\n", ts.ProducedCount, ts.RejectedCount)
	fmt.Fprintf(w, "Halted                 : %d\n", ts.HaltedCount)
	fmt.Fprintf(w, "Mean time in line      : %.2f\n", ts.MeanTimeInLine)
	fmt.Fprintf(w, "Max time in line       : %.2f\n", ts.MaxTimeInLine)
	for _, id := range sortedKeys(ts.BranchDistribution) {
		fmt.Fprintf(w, "  via station %d: %d\n", id, ts.BranchDistribution[id])
	}
	for _, id := range sortedKeys(ts.RejectionsByStation) {
		fmt.Fprintf(w, "  rejected at station %d: %d\n", id, ts.RejectionsByStation[id])
	}
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for the simulation's random source")
	rootCmd.PersistentFlags().Int64Var(&horizon, "horizon", sim.DefaultConfig().Horizon, "Simulation horizon (logical time units); overrides the line config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&lineConfigPath, "config", "", "Path to line configuration YAML (defaults to the reference six-station line)")
	rootCmd.PersistentFlags().BoolVar(&sharedSupplyPool, "shared-supply-pool", false, "Share one pool of resupply devices across all stations")

	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result record as JSON")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write the result in Prometheus text format to this path")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Product trace verbosity (none, products)")
	runCmd.Flags().StringVar(&runDate, "date", time.Now().Format(batch.DateLayout), "Date label for exported metrics")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
