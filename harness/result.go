// Package harness registers, runs and times decoding benchmark cases.
package harness

import (
	"time"

	"github.com/weiihann/decodebench/stats"
)

// CaseState is the lifecycle state of a case within one run.
type CaseState string

const (
	StateRegistered CaseState = "registered"
	StateRunning    CaseState = "running"
	StateCompleted  CaseState = "completed"
	StateFailed     CaseState = "failed"
)

// CaseResult holds the outcome of one case. Stats is set if and only
// if State is StateCompleted; Failure is set if and only if State is
// StateFailed.
type CaseResult struct {
	Name    string            `json:"name"`
	State   CaseState         `json:"state"`
	Samples []time.Duration   `json:"-"`
	Stats   *stats.Statistics `json:"stats,omitempty"`
	Failure *Failure          `json:"failure,omitempty"`
}

// SuiteResult holds the case results of one suite in registration order.
type SuiteResult struct {
	Name  string       `json:"name"`
	Cases []CaseResult `json:"cases"`
}

// Report is the complete outcome of one run.
type Report struct {
	RunID   string        `json:"run_id"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Config  RunConfig     `json:"config"`
	Suites  []SuiteResult `json:"suites"`
}

// Passed reports whether every case completed.
func (r *Report) Passed() bool {
	_, _, failed := r.Counts()
	return failed == 0
}

// Counts returns the total, completed and failed number of cases.
func (r *Report) Counts() (total, completed, failed int) {
	for _, s := range r.Suites {
		for _, c := range s.Cases {
			total++

			switch c.State {
			case StateCompleted:
				completed++
			default:
				failed++
			}
		}
	}

	return total, completed, failed
}
