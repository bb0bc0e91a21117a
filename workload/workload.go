// Package workload generates deterministic synthetic GitHub event
// payloads, so the decoding strategies can also be compared on
// arrays larger than the bundled fixture.
package workload

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	mrand "math/rand"
	"time"

	"github.com/weiihann/decodebench/models"
)

const apiBase = "https://api.github.com"

var epoch = time.Date(2013, time.January, 1, 12, 0, 0, 0, time.UTC)

// Summary contains statistics about the generated workload.
type Summary struct {
	Events        int
	PushEvents    int
	WatchEvents   int
	CreateEvents  int
	Commits       int
	SecondRepoURL string
}

// Config controls workload generation parameters.
type Config struct {
	Events     int
	MaxCommits int
	Seed       int64
}

// Generator produces deterministic workloads from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	if cfg.MaxCommits <= 0 {
		cfg.MaxCommits = 3
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Generate writes a JSON array of events to w and returns a Summary.
func (g *Generator) Generate(w io.Writer) (Summary, error) {
	var summary Summary

	if g.cfg.Events < 0 {
		return summary, fmt.Errorf("negative event count %d", g.cfg.Events)
	}

	events := make([]models.Event, 0, g.cfg.Events)

	for i := 0; i < g.cfg.Events; i++ {
		e := g.baseEvent(i)

		switch g.rng.Intn(3) {
		case 0:
			e.Type = "PushEvent"
			e.Payload = g.pushPayload(e.Repo)
			summary.PushEvents++
			summary.Commits += len(e.Payload.Commits)

		case 1:
			e.Type = "WatchEvent"
			e.Payload = models.Payload{Action: ptr("started")}
			summary.WatchEvents++

		default:
			e.Type = "CreateEvent"
			e.Payload = models.Payload{
				RefType:      ptr("repository"),
				MasterBranch: ptr("master"),
				Description:  ptr(fmt.Sprintf("Generated repository %d", i)),
			}
			summary.CreateEvents++
		}

		if i == 1 {
			summary.SecondRepoURL = e.Repo.URL.String()
		}

		events = append(events, e)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(events); err != nil {
		return summary, fmt.Errorf("encode events: %w", err)
	}

	summary.Events = len(events)

	return summary, nil
}

func (g *Generator) baseEvent(i int) models.Event {
	login := g.randomLogin()
	repoName := login + "/" + g.randomLogin()

	e := models.Event{
		ID:        fmt.Sprintf("%d", 1652860000+i),
		Actor:     g.actor(login),
		Repo:      g.repo(repoName),
		Public:    true,
		CreatedAt: epoch.Add(time.Duration(i) * time.Second),
	}

	if g.rng.Intn(4) == 0 {
		org := models.Org(g.actor(g.randomLogin()))
		e.Org = &org
	}

	return e
}

func (g *Generator) actor(login string) models.Actor {
	gravatar := g.randomHex(16)

	return models.Actor{
		ID:         1 + g.rng.Intn(5_000_000),
		Login:      login,
		GravatarID: gravatar,
		URL:        models.MustParseURL(apiBase + "/users/" + login),
		AvatarURL:  models.MustParseURL("https://secure.gravatar.com/avatar/" + gravatar),
	}
}

func (g *Generator) repo(name string) models.Repo {
	return models.Repo{
		ID:   1 + g.rng.Intn(10_000_000),
		Name: name,
		URL:  models.MustParseURL(apiBase + "/repos/" + name),
	}
}

func (g *Generator) pushPayload(repo models.Repo) models.Payload {
	n := 1 + g.rng.Intn(g.cfg.MaxCommits)
	commits := make([]models.Commit, n)

	for i := range commits {
		sha := g.randomHex(20)
		commits[i] = models.Commit{
			SHA:      sha,
			Message:  fmt.Sprintf("Commit %d of %d", i+1, n),
			Distinct: g.rng.Intn(2) == 0,
			URL:      models.MustParseURL(apiBase + "/repos/" + repo.Name + "/commits/" + sha),
			Author: models.CommitAuthor{
				Name:  "Generated Author",
				Email: "author@example.com",
			},
		}
	}

	return models.Payload{
		PushID:       ptr(100_000_000 + g.rng.Intn(50_000_000)),
		Size:         ptr(n),
		DistinctSize: ptr(n),
		Ref:          ptr("refs/heads/master"),
		Head:         ptr(commits[n-1].SHA),
		Before:       ptr(g.randomHex(20)),
		Commits:      commits,
	}
}

func (g *Generator) randomLogin() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"

	buf := make([]byte, 4+g.rng.Intn(8))
	for i := range buf {
		buf[i] = letters[g.rng.Intn(len(letters))]
	}

	return string(buf)
}

func (g *Generator) randomHex(n int) string {
	buf := make([]byte, n)
	g.rng.Read(buf)

	return hex.EncodeToString(buf)
}

func ptr[T any](v T) *T { return &v }
