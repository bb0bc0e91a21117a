// Package stats reduces benchmark timing samples to summary statistics.
package stats

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	moremath "github.com/aclements/go-moremath/stats"
)

// Unit is the fixed unit of every value held in Statistics.
const Unit = "ns"

var (
	ErrNoSamples   = errors.New("no samples")
	ErrInvalidTrim = errors.New("trim fraction must be in [0, 0.5)")
)

// Statistics summarizes the samples of one completed case. All values
// are nanoseconds.
//
// Min and Max cover every sample. Mean, Median and StdDev cover the
// Retained samples left after trimming both tails.
type Statistics struct {
	Unit     string  `json:"unit"`
	Count    int     `json:"count"`
	Retained int     `json:"retained"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"stddev"`
}

// Summarize computes Statistics over samples. trim is the fraction
// of samples dropped from each end of the sorted sequence; it is
// floored to a whole number of samples and never leaves fewer than
// one retained sample.
func Summarize(samples []time.Duration, trim float64) (Statistics, error) {
	if len(samples) == 0 {
		return Statistics{}, ErrNoSamples
	}

	if trim < 0 || trim >= 0.5 || math.IsNaN(trim) {
		return Statistics{}, fmt.Errorf("%w: %v", ErrInvalidTrim, trim)
	}

	xs := make([]float64, len(samples))
	for i, d := range samples {
		xs[i] = float64(d.Nanoseconds())
	}

	slices.Sort(xs)

	all := moremath.Sample{Xs: xs, Sorted: true}
	lo, hi := all.Bounds()

	k := trimCount(len(xs), trim)
	kept := moremath.Sample{Xs: xs[k : len(xs)-k], Sorted: true}

	// moremath computes the mean incrementally; keep rounding drift
	// inside the observed bounds.
	mean := min(max(kept.Mean(), lo), hi)

	return Statistics{
		Unit:     Unit,
		Count:    len(xs),
		Retained: len(kept.Xs),
		Min:      lo,
		Max:      hi,
		Mean:     mean,
		Median:   kept.Quantile(0.5),
		StdDev:   populationStdDev(kept.Xs),
	}, nil
}

func trimCount(n int, trim float64) int {
	k := int(math.Floor(float64(n) * trim))
	if n-2*k < 1 {
		k = (n - 1) / 2
	}

	return k
}

// populationStdDev divides by n, not n-1; moremath's Sample.StdDev is
// the sample estimator.
func populationStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	mean := moremath.Mean(xs)

	var sum float64
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(xs)))
}

// MinDuration returns Min as a time.Duration.
func (s Statistics) MinDuration() time.Duration { return time.Duration(s.Min) }

// MaxDuration returns Max as a time.Duration.
func (s Statistics) MaxDuration() time.Duration { return time.Duration(s.Max) }

// MeanDuration returns Mean truncated to a whole nanosecond.
func (s Statistics) MeanDuration() time.Duration { return time.Duration(s.Mean) }

// MedianDuration returns Median truncated to a whole nanosecond.
func (s Statistics) MedianDuration() time.Duration { return time.Duration(s.Median) }

// StdDevDuration returns StdDev truncated to a whole nanosecond.
func (s Statistics) StdDevDuration() time.Duration { return time.Duration(s.StdDev) }

// OpsPerSecond derives throughput from the mean. It is 0 when the
// mean is not positive.
func (s Statistics) OpsPerSecond() float64 {
	if s.Mean <= 0 {
		return 0
	}

	return float64(time.Second) / s.Mean
}
