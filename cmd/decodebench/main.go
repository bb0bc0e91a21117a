// Package main provides the CLI entry point for decodebench, a
// comparative benchmark of JSON decoding strategies.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/weiihann/decodebench/config"
	"github.com/weiihann/decodebench/decoders"
	"github.com/weiihann/decodebench/fixture"
	"github.com/weiihann/decodebench/harness"
	"github.com/weiihann/decodebench/report"
	"github.com/weiihann/decodebench/suites"
	"github.com/weiihann/decodebench/workload"
)

var errCasesFailed = errors.New("one or more cases failed")

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := newRootCmd(logger, level)
	err := root.ExecuteContext(ctx)

	stop()

	if err != nil {
		logger.Error("decodebench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	root := &cobra.Command{
		Use:   "decodebench",
		Short: "Comparative benchmark of JSON decoding strategies",
		Long: `Decodebench decodes the same JSON payloads with several functionally
equivalent strategies, checks every decoded model against golden values and
reports the timing statistics of each strategy side by side.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger, level))
	root.AddCommand(newListCmd())
	root.AddCommand(newGenerateCmd(logger))

	return root
}

// runFlags are the command line overrides of config.Config.
type runFlags struct {
	configPath      string
	fixturesDir     string
	iterations      int
	warmup          int
	trim            float64
	filter          string
	format          string
	syntheticEvents int
	seed            int64
	verbose         bool
}

func (f *runFlags) register(cmd *cobra.Command, withRun bool) {
	def := config.Default()
	flags := cmd.Flags()

	flags.StringVar(&f.configPath, "config", "",
		"Path to a YAML configuration file")
	flags.StringVar(&f.filter, "filter", "",
		"Regular expression matched against suite/case; other cases are not registered")
	flags.IntVar(&f.syntheticEvents, "synthetic-events", 0,
		"Add a synthetic_events suite decoding N generated events (N >= 2)")
	flags.Int64Var(&f.seed, "seed", def.Seed,
		"Seed of the synthetic events generator")

	if !withRun {
		return
	}

	flags.StringVar(&f.fixturesDir, "fixtures", def.FixturesDir,
		"Directory holding github_events.json")
	flags.IntVar(&f.iterations, "iterations", def.Iterations,
		"Timed invocations per case")
	flags.IntVar(&f.warmup, "warmup-iterations", def.Warmup,
		"Untimed invocations per case before measuring")
	flags.Float64Var(&f.trim, "trim", def.TrimFraction,
		"Fraction of samples dropped from each tail before averaging")
	flags.StringVar(&f.format, "format", def.Format,
		"Report format: text, json, benchfmt")
	flags.BoolVarP(&f.verbose, "verbose", "v", false,
		"Enable debug logging")
}

// resolve loads the config file, if any, then applies the flags the
// user set explicitly.
func (f *runFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()

	if flags.Changed("fixtures") {
		cfg.FixturesDir = f.fixturesDir
	}
	if flags.Changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if flags.Changed("warmup-iterations") {
		cfg.Warmup = f.warmup
	}
	if flags.Changed("trim") {
		cfg.TrimFraction = f.trim
	}
	if flags.Changed("filter") {
		cfg.Filter = f.filter
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("synthetic-events") {
		cfg.SyntheticEvents = f.syntheticEvents
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	return cfg, cfg.Validate()
}

func newRunCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every registered decoding benchmark",
		Long: `Load the fixtures, register one case per decoding strategy and payload,
run every case and print the comparison report to stdout. The exit status is
non-zero when any case failed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			if cfg.Verbose {
				level.Set(slog.LevelDebug)
			}

			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), cfg)
		},
	}

	f.register(cmd, true)

	return cmd
}

func newListCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered suite/case names without running them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			// Payloads are never decoded by list.
			reg, err := buildRegistry(cfg, &fixture.Fixtures{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range suites.Names(reg) {
				fmt.Fprintln(out, name)
			}

			return nil
		},
	}

	f.register(cmd, false)

	return cmd
}

func newGenerateCmd(logger *slog.Logger) *cobra.Command {
	var (
		events     int
		maxCommits int
		seed       int64
		output     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic GitHub events payload",
		Long: `Generate a deterministic JSON array of push, watch and create events,
usable as an additional fixture.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generateWorkload(cmd.Context(), logger, cmd.OutOrStdout(), output, workload.Config{
				Events:     events,
				MaxCommits: maxCommits,
				Seed:       seed,
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&events, "events", 1000,
		"Number of events to generate")
	flags.IntVar(&maxCommits, "max-commits", 3,
		"Maximum commits per push event")
	flags.Int64Var(&seed, "seed", 1,
		"Random seed")
	flags.StringVarP(&output, "output", "o", "",
		"Output file (default: stdout)")

	return cmd
}

func buildRegistry(cfg config.Config, fx *fixture.Fixtures) (*harness.Registry, error) {
	filter, err := cfg.FilterRegexp()
	if err != nil {
		return nil, err
	}

	reg := harness.NewRegistry()

	err = suites.Register(reg, fx, suites.Options{
		Decoding:        decoders.DefaultOptions(),
		Filter:          filter,
		SyntheticEvents: cfg.SyntheticEvents,
		Seed:            cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("register suites: %w", err)
	}

	return reg, nil
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg config.Config,
) error {
	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("warmup", cfg.Warmup),
		slog.Int("iterations", cfg.Iterations),
		slog.Float64("trim", cfg.TrimFraction),
		slog.String("fixtures", cfg.FixturesDir),
		slog.String("filter", cfg.Filter),
		slog.Int("synthetic_events", cfg.SyntheticEvents),
	)

	// Step 1: Load fixtures. Nothing runs if any payload is missing.
	fx, err := fixture.Provider{Dir: cfg.FixturesDir}.Load()
	if err != nil {
		var le *fixture.LoadError
		if errors.As(err, &le) {
			logger.ErrorContext(ctx, "fixture load failed",
				slog.String("resource", le.Resource),
				slog.String("path", le.Path),
			)
		}

		return err
	}

	// Step 2: Register suites.
	reg, err := buildRegistry(cfg, fx)
	if err != nil {
		return err
	}

	// Step 3: Run every case.
	rep, err := harness.NewRunner(cfg.RunConfig(), logger).Run(ctx, reg)
	if err != nil {
		return fmt.Errorf("run benchmarks: %w", err)
	}

	// Step 4: Generate report.
	switch cfg.Format {
	case config.FormatJSON:
		err = report.GenerateJSON(out, rep)
	case config.FormatBenchfmt:
		err = report.GenerateBenchfmt(out, rep)
	default:
		err = report.Generate(out, rep)
	}

	if err != nil {
		return fmt.Errorf("generate %s report: %w", cfg.Format, err)
	}

	total, completed, failed := rep.Counts()

	logger.InfoContext(ctx, "benchmark complete",
		slog.String("run_id", rep.RunID),
		slog.Int("cases", total),
		slog.Int("completed", completed),
		slog.Int("failed", failed),
		slog.Duration("elapsed", rep.Elapsed),
	)

	if !rep.Passed() {
		return errCasesFailed
	}

	return nil
}

func generateWorkload(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	path string,
	cfg workload.Config,
) error {
	gen := workload.NewGenerator(cfg)

	var (
		summary workload.Summary
		err     error
	)

	if path == "" {
		summary, err = gen.Generate(stdout)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	} else {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("create workload file: %w", createErr)
		}

		summary, err = gen.Generate(f)
		if err != nil {
			f.Close()
			os.Remove(path)

			return fmt.Errorf("generate: %w", err)
		}

		if err := f.Close(); err != nil {
			return fmt.Errorf("close workload file: %w", err)
		}
	}

	logger.InfoContext(ctx, "workload generated",
		slog.String("path", path),
		slog.Int("events", summary.Events),
		slog.Int("push_events", summary.PushEvents),
		slog.Int("watch_events", summary.WatchEvents),
		slog.Int("create_events", summary.CreateEvents),
		slog.Int("commits", summary.Commits),
	)

	return nil
}
