// Package fixture provides the immutable payloads every strategy decodes
// and the golden values decoded models are checked against.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is where github_events.json is looked up when no
// directory is configured.
const DefaultDir = "fixture/testdata"

// GitHubEventsFile is the file name of the events payload.
const GitHubEventsFile = "github_events.json"

// NaivePayload is the small document of the naive suite.
const NaivePayload = `{
    "name": "Ducky Model Editor",
    "introduction": "I'm Ducky, a document-based app that helps you infer models from JSON.",
    "supported_outputs": [
        "JOSN Schema",
        "Swift",
        "Kotlin",
        "Dart",
        "Go",
        "Proto"
    ],
    "developer": {
        "user_id": 42,
        "username": "nixzhu",
        "email": "zhuhongxu@gmail.com",
        "website_url": "https://nixzhu.dev"
    }
}`

// NaiveGolden holds the values every naive model must carry.
var NaiveGolden = struct {
	SecondOutput string
	UserID       int
	WebsiteURL   string
}{
	SecondOutput: "Swift",
	UserID:       42,
	WebsiteURL:   "https://nixzhu.dev",
}

// GitHubEventsGolden holds the values every events model must carry.
var GitHubEventsGolden = struct {
	SecondRepoURL string
}{
	SecondRepoURL: "https://api.github.com/repos/noahlu/mockingbird",
}

// LoadError reports a payload that could not be obtained.
type LoadError struct {
	Resource string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load fixture %s: %v", e.Resource, e.Err)
	}

	return fmt.Sprintf("load fixture %s from %s: %v", e.Resource, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is, or wraps, a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Fixtures are loaded once and shared read-only by every case.
type Fixtures struct {
	Naive        []byte
	GitHubEvents []byte
}

// Provider loads fixtures from a directory.
type Provider struct {
	Dir string
}

// Load reads every payload. Any failure is returned as a *LoadError
// naming the resource.
func (p Provider) Load() (*Fixtures, error) {
	dir := p.Dir
	if dir == "" {
		dir = DefaultDir
	}

	path := filepath.Join(dir, GitHubEventsFile)

	events, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Resource: "github_events", Path: path, Err: err}
	}

	if len(events) == 0 {
		return nil, &LoadError{
			Resource: "github_events",
			Path:     path,
			Err:      errors.New("empty file"),
		}
	}

	return &Fixtures{
		Naive:        []byte(NaivePayload),
		GitHubEvents: events,
	}, nil
}
