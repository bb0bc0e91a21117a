package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/weiihann/decodebench/stats"
)

// ErrInterrupted is returned by Run when its context is cancelled.
var ErrInterrupted = errors.New("run interrupted")

// Default iteration policy. Every case gets the same values so that
// comparisons stay fair.
const (
	DefaultWarmup       = 10
	DefaultIterations   = 1000
	DefaultTrimFraction = 0.05
)

// RunConfig holds the iteration policy applied to every case.
type RunConfig struct {
	Warmup       int     `json:"warmup"`
	Iterations   int     `json:"iterations"`
	TrimFraction float64 `json:"trim_fraction"`
}

// DefaultRunConfig returns the default iteration policy.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Warmup:       DefaultWarmup,
		Iterations:   DefaultIterations,
		TrimFraction: DefaultTrimFraction,
	}
}

// Validate checks the policy bounds.
func (c RunConfig) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}

	if c.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative, got %d", c.Warmup)
	}

	if c.TrimFraction < 0 || c.TrimFraction >= 0.5 {
		return fmt.Errorf("trim fraction must be in [0, 0.5), got %v", c.TrimFraction)
	}

	return nil
}

// Runner executes every case of a Registry sequentially on the
// calling goroutine.
type Runner struct {
	Config RunConfig
	Logger *slog.Logger
}

// NewRunner creates a Runner with the given iteration policy.
func NewRunner(cfg RunConfig, logger *slog.Logger) *Runner {
	return &Runner{
		Config: cfg,
		Logger: logger,
	}
}

// Run freezes reg and executes its suites, then their cases, in
// registration order. Per-case failures are recorded in the Report
// and never abort the run. If ctx is cancelled, Run discards all
// results and returns an error wrapping ErrInterrupted.
func (r *Runner) Run(ctx context.Context, reg *Registry) (*Report, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}

	reg.freeze()

	rep := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Config:  r.Config,
		Suites:  make([]SuiteResult, 0, len(reg.suites)),
	}

	for _, suite := range reg.suites {
		r.Logger.DebugContext(ctx, "running suite",
			slog.String("suite", suite.name),
			slog.Int("cases", len(suite.cases)),
		)

		sr := SuiteResult{
			Name:  suite.name,
			Cases: make([]CaseResult, 0, len(suite.cases)),
		}

		for _, c := range suite.cases {
			res, err := r.runCase(ctx, suite.name, c)
			if err != nil {
				return nil, err
			}

			sr.Cases = append(sr.Cases, res)
		}

		rep.Suites = append(rep.Suites, sr)
	}

	rep.Elapsed = time.Since(rep.Started)

	return rep, nil
}

func (r *Runner) runCase(
	ctx context.Context,
	suite string,
	c *Case,
) (CaseResult, error) {
	logger := r.Logger.With(
		slog.String("suite", suite),
		slog.String("case", c.name),
	)

	res := CaseResult{Name: c.name, State: StateRunning}

	logger.InfoContext(ctx, "case started",
		slog.Int("warmup", r.Config.Warmup),
		slog.Int("iterations", r.Config.Iterations),
	)

	for i := 0; i < r.Config.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return CaseResult{}, interrupted(err)
		}

		if err := invoke(c.work); err != nil {
			return r.fail(ctx, logger, res, newFailure("warmup", i, err)), nil
		}
	}

	// Keep garbage from the warm-up phase out of the first samples.
	runtime.GC()

	samples := make([]time.Duration, 0, r.Config.Iterations)

	for i := 0; i < r.Config.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return CaseResult{}, interrupted(err)
		}

		start := time.Now()
		err := invoke(c.work)
		elapsed := time.Since(start)

		if err != nil {
			return r.fail(ctx, logger, res, newFailure("measure", i, err)), nil
		}

		samples = append(samples, elapsed)
	}

	summary, err := stats.Summarize(samples, r.Config.TrimFraction)
	if err != nil {
		return r.fail(ctx, logger, res, newFailure("summarize", len(samples), err)), nil
	}

	res.State = StateCompleted
	res.Samples = samples
	res.Stats = &summary

	logger.InfoContext(ctx, "case completed",
		slog.Duration("mean", summary.MeanDuration()),
		slog.Duration("median", summary.MedianDuration()),
		slog.Int("samples", summary.Count),
	)

	return res, nil
}

func (r *Runner) fail(
	ctx context.Context,
	logger *slog.Logger,
	res CaseResult,
	f *Failure,
) CaseResult {
	res.State = StateFailed
	res.Failure = f

	logger.WarnContext(ctx, "case failed",
		slog.String("kind", string(f.Kind)),
		slog.String("phase", f.Phase),
		slog.Int("iteration", f.Iteration),
		slog.String("reason", f.Reason),
	)

	return res
}

// invoke runs work once, converting a panic into a PanicError.
func invoke(work Work) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v}
		}
	}()

	return work()
}

func interrupted(err error) error {
	return fmt.Errorf("%w: %w", ErrInterrupted, err)
}
