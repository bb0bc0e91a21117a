// Package report formats benchmark results into comparison tables.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/weiihann/decodebench/harness"
)

var errNilReport = errors.New("no report to format")

// Generate writes a markdown comparison table per suite for rep.
func Generate(w io.Writer, rep *harness.Report) error {
	if rep == nil {
		return errNilReport
	}

	total, completed, failed := rep.Counts()

	// Header.
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run `%s`: warmup %d, iterations %d, trim %.1f%% per tail, elapsed %s\n",
		rep.RunID,
		rep.Config.Warmup,
		rep.Config.Iterations,
		rep.Config.TrimFraction*100,
		formatDuration(rep.Elapsed),
	)

	for _, s := range rep.Suites {
		fmt.Fprintln(w)
		writeSuite(w, s)
	}

	fmt.Fprintln(w)

	status := "PASS"
	if failed > 0 {
		status = "FAIL"
	}

	_, err := fmt.Fprintf(w, "Result: **%s** (%d cases, %d completed, %d failed)\n",
		status, total, completed, failed)

	return err
}

func writeSuite(w io.Writer, s harness.SuiteResult) {
	fmt.Fprintf(w, "### %s\n", s.Name)
	fmt.Fprintln(w)

	if len(s.Cases) == 0 {
		fmt.Fprintln(w, "_no cases_")
		return
	}

	fastest := findFastest(s.Cases)

	// Table header.
	fmt.Fprintln(w, "| Case | Status | Mean | Median | Std Dev "+
		"| Min | Max | Ops/s | Samples | Relative |")
	fmt.Fprintln(w, "|------|--------|------|--------|---------"+
		"|-----|-----|-------|---------|----------|")

	for _, c := range s.Cases {
		if c.Stats == nil {
			fmt.Fprintf(w, "| %s | FAIL | - | - | - | - | - | - | - | - |\n", c.Name)
			continue
		}

		relative := 1.0
		if fastest > 0 {
			relative = c.Stats.Mean / fastest
		}

		fmt.Fprintf(w, "| %s | ok | %s | %s | %s | %s | %s | %.0f | %d | %.2fx |\n",
			c.Name,
			formatDuration(c.Stats.MeanDuration()),
			formatDuration(c.Stats.MedianDuration()),
			formatDuration(c.Stats.StdDevDuration()),
			formatDuration(c.Stats.MinDuration()),
			formatDuration(c.Stats.MaxDuration()),
			c.Stats.OpsPerSecond(),
			c.Stats.Count,
			relative,
		)
	}

	var failures []harness.CaseResult

	for _, c := range s.Cases {
		if c.Failure != nil {
			failures = append(failures, c)
		}
	}

	if len(failures) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Failures:")

	for _, c := range failures {
		fmt.Fprintf(w, "  - %s: %s during %s, iteration %d: %s\n",
			c.Name,
			c.Failure.Kind,
			c.Failure.Phase,
			c.Failure.Iteration,
			oneLine(c.Failure.Reason),
		)
	}
}

// GenerateJSON writes rep as indented JSON to w.
func GenerateJSON(w io.Writer, rep *harness.Report) error {
	if rep == nil {
		return errNilReport
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

// findFastest returns the smallest mean among completed cases, or 0.
func findFastest(cases []harness.CaseResult) float64 {
	fastest := math.Inf(1)
	for _, c := range cases {
		if c.Stats != nil && c.Stats.Mean > 0 && c.Stats.Mean < fastest {
			fastest = c.Stats.Mean
		}
	}

	if math.IsInf(fastest, 1) {
		return 0
	}

	return fastest
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
