package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryFrozen is returned when registering after a run started.
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrDuplicateSuite is returned when a suite name is already registered.
	ErrDuplicateSuite = errors.New("duplicate suite name")

	// ErrDuplicateCase is returned when a case name repeats within a suite.
	ErrDuplicateCase = errors.New("duplicate case name")

	// ErrEmptyName is returned for an empty suite or case name.
	ErrEmptyName = errors.New("empty name")

	// ErrNilWork is returned when a case is added without work.
	ErrNilWork = errors.New("nil work")
)

// Work is one invocation of a decoding strategy plus its correctness
// check. A non-nil error fails the case it belongs to.
type Work func() error

// Case is a named unit of work registered in a Suite.
type Case struct {
	name string
	work Work
}

// Name returns the case name.
func (c *Case) Name() string { return c.name }

// Suite is an ordered, named group of cases.
type Suite struct {
	name  string
	reg   *Registry
	cases []*Case
	index map[string]struct{}
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Cases returns the cases in registration order.
func (s *Suite) Cases() []*Case {
	return append([]*Case(nil), s.cases...)
}

// AddCase appends a case to the suite. Names must be unique within
// the suite and the registry must not be frozen.
func (s *Suite) AddCase(name string, work Work) error {
	if s.reg.frozen {
		return fmt.Errorf("add case %s/%s: %w", s.name, name, ErrRegistryFrozen)
	}

	if name == "" {
		return fmt.Errorf("add case to %s: %w", s.name, ErrEmptyName)
	}

	if work == nil {
		return fmt.Errorf("add case %s/%s: %w", s.name, name, ErrNilWork)
	}

	if _, ok := s.index[name]; ok {
		return fmt.Errorf("add case %s/%s: %w", s.name, name, ErrDuplicateCase)
	}

	s.index[name] = struct{}{}
	s.cases = append(s.cases, &Case{name: name, work: work})

	return nil
}

// Registry holds the suites of a run in registration order. It is
// mutable until the first Run, after which it is frozen.
type Registry struct {
	suites []*Suite
	index  map[string]struct{}
	frozen bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// CreateSuite registers a new, empty suite.
func (r *Registry) CreateSuite(name string) (*Suite, error) {
	if r.frozen {
		return nil, fmt.Errorf("create suite %s: %w", name, ErrRegistryFrozen)
	}

	if name == "" {
		return nil, fmt.Errorf("create suite: %w", ErrEmptyName)
	}

	if _, ok := r.index[name]; ok {
		return nil, fmt.Errorf("create suite %s: %w", name, ErrDuplicateSuite)
	}

	s := &Suite{
		name:  name,
		reg:   r,
		index: make(map[string]struct{}),
	}

	r.index[name] = struct{}{}
	r.suites = append(r.suites, s)

	return s, nil
}

// Suites returns the suites in registration order.
func (r *Registry) Suites() []*Suite {
	return append([]*Suite(nil), r.suites...)
}

// Frozen reports whether a run has started on this registry.
func (r *Registry) Frozen() bool { return r.frozen }

func (r *Registry) freeze() { r.frozen = true }
