package stats

import (
	"errors"
	"math"
	"testing"
	"time"
)

func durations(ns ...int64) []time.Duration {
	out := make([]time.Duration, len(ns))
	for i, n := range ns {
		out[i] = time.Duration(n)
	}

	return out
}

func TestSummarizeNoTrim(t *testing.T) {
	s, err := Summarize(durations(40, 10, 30, 20), 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Count != 4 || s.Retained != 4 {
		t.Errorf("count/retained = %d/%d, want 4/4", s.Count, s.Retained)
	}

	if s.Min != 10 || s.Max != 40 {
		t.Errorf("min/max = %v/%v, want 10/40", s.Min, s.Max)
	}

	if s.Mean != 25 {
		t.Errorf("mean = %v, want 25", s.Mean)
	}

	if math.Abs(s.Median-25) > 1e-9 {
		t.Errorf("median = %v, want 25", s.Median)
	}

	// Population standard deviation of 10,20,30,40 is sqrt(125).
	if math.Abs(s.StdDev-math.Sqrt(125)) > 1e-9 {
		t.Errorf("stddev = %v, want %v", s.StdDev, math.Sqrt(125))
	}

	if s.Unit != "ns" {
		t.Errorf("unit = %q, want ns", s.Unit)
	}
}

func TestSummarizeTrim(t *testing.T) {
	ns := make([]int64, 0, 20)
	for i := 0; i < 18; i++ {
		ns = append(ns, 100)
	}

	// One outlier on each side; 5% of 20 drops exactly one per tail.
	ns = append(ns, 1, 100000)

	s, err := Summarize(durations(ns...), 0.05)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Count != 20 || s.Retained != 18 {
		t.Errorf("count/retained = %d/%d, want 20/18", s.Count, s.Retained)
	}

	if s.Mean != 100 || s.StdDev != 0 {
		t.Errorf("mean/stddev = %v/%v, want 100/0", s.Mean, s.StdDev)
	}

	if s.Min != 1 || s.Max != 100000 {
		t.Errorf("min/max = %v/%v, want untrimmed 1/100000", s.Min, s.Max)
	}
}

func TestSummarizeKeepsOneSample(t *testing.T) {
	tests := []struct {
		samples      []time.Duration
		trim         float64
		wantRetained int
	}{
		{durations(5), 0.49, 1},
		{durations(5, 6), 0.49, 2},
		{durations(1, 2, 3), 0.49, 1},
		{durations(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 0.2, 6},
	}

	for _, tt := range tests {
		s, err := Summarize(tt.samples, tt.trim)
		if err != nil {
			t.Fatalf("Summarize(%v, %v) failed: %v", tt.samples, tt.trim, err)
		}

		if s.Retained != tt.wantRetained {
			t.Errorf("Summarize(%v, %v) retained = %d, want %d",
				tt.samples, tt.trim, s.Retained, tt.wantRetained)
		}

		if s.Min > s.Mean || s.Mean > s.Max {
			t.Errorf("min/mean/max out of order: %v/%v/%v", s.Min, s.Mean, s.Max)
		}
	}
}

func TestSummarizeMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []time.Duration
		trim    float64
		want    float64
	}{
		{"single", durations(7), 0, 7},
		{"odd count", durations(50, 10, 30, 20, 40), 0, 30},
		{"even count interpolates", durations(40, 10, 30, 20), 0, 25},
		{"trimmed tails", durations(1, 10, 20, 30, 1000), 0.2, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Summarize(tt.samples, tt.trim)
			if err != nil {
				t.Fatalf("Summarize failed: %v", err)
			}

			if math.Abs(s.Median-tt.want) > 1e-9 {
				t.Errorf("median = %v, want %v", s.Median, tt.want)
			}
		})
	}
}

func TestSummarizeErrors(t *testing.T) {
	if _, err := Summarize(nil, 0); !errors.Is(err, ErrNoSamples) {
		t.Errorf("empty samples error = %v, want ErrNoSamples", err)
	}

	for _, trim := range []float64{-0.01, 0.5, 1, math.NaN()} {
		if _, err := Summarize(durations(1), trim); !errors.Is(err, ErrInvalidTrim) {
			t.Errorf("trim %v error = %v, want ErrInvalidTrim", trim, err)
		}
	}
}

func TestDerivedUnits(t *testing.T) {
	s := Statistics{Mean: 2500, Median: 2000, Min: 1000, Max: 4000, StdDev: 10}

	if s.MeanDuration() != 2500*time.Nanosecond {
		t.Errorf("MeanDuration = %v", s.MeanDuration())
	}

	if s.MinDuration() != time.Microsecond || s.MaxDuration() != 4*time.Microsecond {
		t.Errorf("Min/MaxDuration = %v/%v", s.MinDuration(), s.MaxDuration())
	}

	if got := s.OpsPerSecond(); got != 400000 {
		t.Errorf("OpsPerSecond = %v, want 400000", got)
	}

	if (Statistics{}).OpsPerSecond() != 0 {
		t.Error("OpsPerSecond of zero mean should be 0")
	}
}
