package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/weiihann/decodebench/harness"
	"github.com/weiihann/decodebench/stats"
)

func completed(name string, mean float64) harness.CaseResult {
	return harness.CaseResult{
		Name:  name,
		State: harness.StateCompleted,
		Stats: &stats.Statistics{
			Unit:     stats.Unit,
			Count:    100,
			Retained: 90,
			Min:      mean / 2,
			Max:      mean * 2,
			Mean:     mean,
			Median:   mean,
			StdDev:   mean / 10,
		},
	}
}

func failed(name, reason string) harness.CaseResult {
	return harness.CaseResult{
		Name:  name,
		State: harness.StateFailed,
		Failure: &harness.Failure{
			Kind:      harness.KindAssertion,
			Phase:     "measure",
			Iteration: 4,
			Reason:    reason,
		},
	}
}

func testReport(cases ...harness.CaseResult) *harness.Report {
	return &harness.Report{
		RunID:   "run-1",
		Started: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Elapsed: 1500 * time.Millisecond,
		Config:  harness.RunConfig{Warmup: 10, Iterations: 100, TrimFraction: 0.05},
		Suites: []harness.SuiteResult{
			{Name: "naive", Cases: cases},
		},
	}
}

func TestGeneratePassing(t *testing.T) {
	rep := testReport(
		completed("encoding/json decoding", 2000),
		completed("sonic decoding", 1000),
	)

	var buf bytes.Buffer
	if err := Generate(&buf, rep); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"### naive",
		"| Case | Status | Mean | Median | Std Dev | Min | Max | Ops/s | Samples | Relative |",
		"| encoding/json decoding | ok | 2.00µs | 2.00µs | 200ns | 1.00µs | 4.00µs | 500000 | 100 | 2.00x |",
		"| sonic decoding | ok | 1.00µs | 1.00µs | 100ns | 500ns | 2.00µs | 1000000 | 100 | 1.00x |",
		"Result: **PASS** (2 cases, 2 completed, 0 failed)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	if strings.Contains(output, "Failures:") {
		t.Error("unexpected failures list for passing report")
	}
}

func TestGenerateFailingCase(t *testing.T) {
	rep := testReport(
		completed("sonic decoding", 1000),
		failed("jsonparser decoding", "assertion: events[1].repo.url = a,\nwant b"),
	)

	var buf bytes.Buffer
	if err := Generate(&buf, rep); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "| jsonparser decoding | FAIL | - | - | - | - | - | - | - | - |") {
		t.Errorf("expected FAIL row in output:\n%s", output)
	}
	if !strings.Contains(output, "jsonparser decoding: assertion during measure, iteration 4: assertion: events[1].repo.url = a, want b") {
		t.Errorf("expected single-line failure reason in output:\n%s", output)
	}
	if !strings.Contains(output, "Result: **FAIL** (2 cases, 1 completed, 1 failed)") {
		t.Errorf("expected FAIL result line in output:\n%s", output)
	}
}

func TestGenerateEmptySuite(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, testReport()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(buf.String(), "_no cases_") {
		t.Error("expected empty suite marker")
	}
}

func TestGenerateNilReport(t *testing.T) {
	var buf bytes.Buffer

	if err := Generate(&buf, nil); err == nil {
		t.Error("Generate: expected error for nil report")
	}
	if err := GenerateJSON(&buf, nil); err == nil {
		t.Error("GenerateJSON: expected error for nil report")
	}
	if err := GenerateBenchfmt(&buf, nil); err == nil {
		t.Error("GenerateBenchfmt: expected error for nil report")
	}
}

func TestGenerateJSON(t *testing.T) {
	rep := testReport(completed("sonic decoding", 1000), failed("jsonparser decoding", "boom"))

	var buf bytes.Buffer
	if err := GenerateJSON(&buf, rep); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	var decoded harness.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.RunID != "run-1" {
		t.Errorf("run id = %q, want run-1", decoded.RunID)
	}

	cases := decoded.Suites[0].Cases
	if len(cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(cases))
	}

	if cases[0].Stats == nil || cases[0].Stats.Mean != 1000 {
		t.Errorf("stats not preserved: %+v", cases[0].Stats)
	}
	if cases[1].Failure == nil || cases[1].Failure.Reason != "boom" {
		t.Errorf("failure not preserved: %+v", cases[1].Failure)
	}
	if decoded.Passed() {
		t.Error("decoded report should not pass")
	}
}

func TestGenerateBenchfmt(t *testing.T) {
	rep := testReport(completed("encoding/json decoding", 1500), failed("field table decoding", "boom"))

	var buf bytes.Buffer
	if err := GenerateBenchfmt(&buf, rep); err != nil {
		t.Fatalf("GenerateBenchfmt failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"runid: run-1\n",
		"iterations: 100\n",
		"warmup: 10\n",
		"trim: 0.05\n",
		"BenchmarkNaive/encoding_json_decoding 100 1500 ns/op 1500 ns/median 150 ns/stddev\n",
		"--- FAIL: BenchmarkNaive/field_table_decoding\n    boom\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestGenerateBenchfmtWritesFileConfigOnce(t *testing.T) {
	rep := testReport(completed("sonic decoding", 1000), completed("jsonparser decoding", 2000))

	var buf bytes.Buffer
	if err := GenerateBenchfmt(&buf, rep); err != nil {
		t.Fatalf("GenerateBenchfmt failed: %v", err)
	}

	output := buf.String()

	if n := strings.Count(output, "runid: run-1\n"); n != 1 {
		t.Errorf("runid line written %d times, want 1:\n%s", n, output)
	}

	header := strings.Index(output, "runid: run-1\n")
	first := strings.Index(output, "BenchmarkNaive/sonic_decoding ")
	second := strings.Index(output, "BenchmarkNaive/jsonparser_decoding ")

	if header < 0 || first < header || second < first {
		t.Errorf("file config must precede results in order:\n%s", output)
	}
}

func TestBenchmarkName(t *testing.T) {
	tests := []struct {
		suite, name, want string
	}{
		{"naive", "sonic decoding", "Naive/sonic_decoding"},
		{"github_events", "encoding/json decoding", "Github_events/encoding_json_decoding"},
		{"", "x", "/x"},
	}

	for _, tt := range tests {
		if got := benchmarkName(tt.suite, tt.name); got != tt.want {
			t.Errorf("benchmarkName(%q, %q) = %q, want %q", tt.suite, tt.name, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.50µs"},
		{2500 * time.Microsecond, "2.50ms"},
		{3 * time.Second, "3.00s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
