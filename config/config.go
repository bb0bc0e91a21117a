// Package config loads the benchmark run configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/weiihann/decodebench/fixture"
	"github.com/weiihann/decodebench/harness"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Config.Format.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatBenchfmt = "benchfmt"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("regexp", validateRegexp); err != nil {
		panic(fmt.Sprintf("register regexp validation: %v", err))
	}
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

// Config is the complete run configuration. Zero-valued optional
// fields keep their defaults when loaded from a file.
type Config struct {
	Warmup          int     `yaml:"warmup" validate:"gte=0"`
	Iterations      int     `yaml:"iterations" validate:"gte=1"`
	TrimFraction    float64 `yaml:"trim_fraction" validate:"gte=0,lt=0.5"`
	FixturesDir     string  `yaml:"fixtures_dir" validate:"required"`
	Format          string  `yaml:"format" validate:"oneof=text json benchfmt"`
	Filter          string  `yaml:"filter" validate:"omitempty,regexp"`
	SyntheticEvents int     `yaml:"synthetic_events" validate:"omitempty,gte=2"`
	Seed            int64   `yaml:"seed"`
	Verbose         bool    `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	rc := harness.DefaultRunConfig()

	return Config{
		Warmup:       rc.Warmup,
		Iterations:   rc.Iterations,
		TrimFraction: rc.TrimFraction,
		FixturesDir:  fixture.DefaultDir,
		Format:       FormatText,
		Seed:         1,
	}
}

// Load reads the YAML file at path on top of Default and validates
// the result. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field against its bounds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// RunConfig returns the iteration policy for the runner.
func (c Config) RunConfig() harness.RunConfig {
	return harness.RunConfig{
		Warmup:       c.Warmup,
		Iterations:   c.Iterations,
		TrimFraction: c.TrimFraction,
	}
}

// FilterRegexp compiles Filter, or returns nil when it is empty.
func (c Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Filter == "" {
		return nil, nil
	}

	re, err := regexp.Compile(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	return re, nil
}
