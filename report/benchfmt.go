package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/weiihann/decodebench/harness"
	"golang.org/x/perf/benchfmt"
)

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\t", "_")

// GenerateBenchfmt writes rep in the Go benchmark format, so runs can
// be compared with benchstat. Failed cases are written as
// "--- FAIL:" lines, which benchmark readers skip.
func GenerateBenchfmt(w io.Writer, rep *harness.Report) error {
	if rep == nil {
		return errNilReport
	}

	bw := benchfmt.NewWriter(w)

	res := &benchfmt.Result{
		Config: []benchfmt.Config{
			fileConfig("runid", rep.RunID),
			fileConfig("iterations", strconv.Itoa(rep.Config.Iterations)),
			fileConfig("warmup", strconv.Itoa(rep.Config.Warmup)),
			fileConfig("trim", strconv.FormatFloat(rep.Config.TrimFraction, 'g', -1, 64)),
		},
	}

	for _, s := range rep.Suites {
		for _, c := range s.Cases {
			name := benchmarkName(s.Name, c.Name)

			if c.Stats == nil {
				reason := ""
				if c.Failure != nil {
					reason = oneLine(c.Failure.Reason)
				}

				if _, err := fmt.Fprintf(w, "--- FAIL: Benchmark%s\n    %s\n", name, reason); err != nil {
					return err
				}

				continue
			}

			res.Name = benchfmt.Name(name)
			res.Iters = c.Stats.Count
			res.Values = []benchfmt.Value{
				{Value: c.Stats.Mean, Unit: "ns/op"},
				{Value: c.Stats.Median, Unit: "ns/median"},
				{Value: c.Stats.StdDev, Unit: "ns/stddev"},
			}

			if err := bw.Write(res); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
		}
	}

	return nil
}

// fileConfig is a "key: value" line written once above the results.
func fileConfig(key, value string) benchfmt.Config {
	return benchfmt.Config{Key: key, Value: []byte(value), File: true}
}

// benchmarkName joins suite and case into a benchmark name without
// spaces. The case keeps no slashes so it stays a single sub-benchmark.
func benchmarkName(suite, name string) string {
	return upperFirst(nameReplacer.Replace(suite)) + "/" + nameReplacer.Replace(name)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
