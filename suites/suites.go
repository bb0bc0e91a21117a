// Package suites binds the decoding strategies, the fixtures and the
// golden checks into a harness registry.
package suites

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/weiihann/decodebench/decoders"
	"github.com/weiihann/decodebench/fixture"
	"github.com/weiihann/decodebench/harness"
	"github.com/weiihann/decodebench/models"
	"github.com/weiihann/decodebench/workload"
)

// Suite names, in registration order.
const (
	Naive           = "naive"
	GitHubEvents    = "github_events"
	SyntheticEvents = "synthetic_events"
)

// ErrTooFewEvents is returned when the synthetic suite is asked for an
// array too short to carry the second-element check.
var ErrTooFewEvents = errors.New("synthetic events must be at least 2")

// Options selects what Register adds to the registry.
type Options struct {
	// Decoding is shared by every strategy. Nil means DefaultOptions.
	Decoding *decoders.Options

	// Filter is matched against "suite/case". Nil keeps every case.
	Filter *regexp.Regexp

	// SyntheticEvents > 0 adds the synthetic_events suite.
	SyntheticEvents int
	Seed            int64
}

// Register adds the naive and github_events suites, plus the
// synthetic_events suite when requested. Suites whose cases are all
// filtered out are not created.
func Register(reg *harness.Registry, fx *fixture.Fixtures, opts Options) error {
	if fx == nil {
		return errors.New("nil fixtures")
	}

	if opts.SyntheticEvents != 0 && opts.SyntheticEvents < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewEvents, opts.SyntheticEvents)
	}

	dec := opts.Decoding
	if dec == nil {
		dec = decoders.DefaultOptions()
	}

	keep := func(path string) bool {
		return opts.Filter == nil || opts.Filter.MatchString(path)
	}

	if err := addSuite(reg, Naive, decoders.IndieAppStrategies(dec), fx.Naive, checkIndieApp, keep); err != nil {
		return err
	}

	err := addSuite(reg, GitHubEvents, decoders.EventStrategies(dec), fx.GitHubEvents,
		checkEvents(0, fixture.GitHubEventsGolden.SecondRepoURL), keep)
	if err != nil {
		return err
	}

	if opts.SyntheticEvents == 0 {
		return nil
	}

	var buf bytes.Buffer

	gen := workload.NewGenerator(workload.Config{Events: opts.SyntheticEvents, Seed: opts.Seed})

	summary, err := gen.Generate(&buf)
	if err != nil {
		return fmt.Errorf("generate synthetic events: %w", err)
	}

	return addSuite(reg, SyntheticEvents, decoders.EventStrategies(dec), buf.Bytes(),
		checkEvents(summary.Events, summary.SecondRepoURL), keep)
}

func addSuite[M any](
	reg *harness.Registry,
	name string,
	strategies []decoders.Strategy[M],
	payload []byte,
	check harness.Check[M],
	keep func(string) bool,
) error {
	var suite *harness.Suite

	for _, s := range strategies {
		if !keep(Path(name, s.Name)) {
			continue
		}

		if suite == nil {
			var err error
			if suite, err = reg.CreateSuite(name); err != nil {
				return err
			}
		}

		work := harness.DecodeCase(harness.DecoderFunc[M](s.Decode), payload, check)
		if err := suite.AddCase(s.Name, work); err != nil {
			return err
		}
	}

	return nil
}

func checkIndieApp(app models.IndieApp) error {
	if err := harness.Expect(len(app.SupportedOutputs) > 1,
		"supported_outputs has %d elements, want at least 2", len(app.SupportedOutputs)); err != nil {
		return err
	}

	if err := harness.Equal("supported_outputs[1]", app.SupportedOutputs[1], fixture.NaiveGolden.SecondOutput); err != nil {
		return err
	}

	if err := harness.Equal("developer.user_id", app.Developer.UserID, fixture.NaiveGolden.UserID); err != nil {
		return err
	}

	return harness.Equal("developer.website_url", app.Developer.WebsiteURL.String(), fixture.NaiveGolden.WebsiteURL)
}

// checkEvents verifies the second element's repo url and, when
// wantLen > 0, the array length.
func checkEvents(wantLen int, secondRepoURL string) harness.Check[[]models.Event] {
	return func(list []models.Event) error {
		if wantLen > 0 {
			if err := harness.Equal("len(events)", len(list), wantLen); err != nil {
				return err
			}
		}

		if err := harness.Expect(len(list) > 1, "events has %d elements, want at least 2", len(list)); err != nil {
			return err
		}

		return harness.Equal("events[1].repo.url", list[1].Repo.URL.String(), secondRepoURL)
	}
}

// Path is the "suite/case" name a filter is matched against.
func Path(suite, name string) string {
	return suite + "/" + name
}

// Names lists every registered case as "suite/case", in order.
func Names(reg *harness.Registry) []string {
	var names []string

	for _, s := range reg.Suites() {
		for _, c := range s.Cases() {
			names = append(names, Path(s.Name(), c.Name()))
		}
	}

	return names
}
