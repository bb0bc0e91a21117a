package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiihann/decodebench/fixture"
	"github.com/weiihann/decodebench/harness"
)

const fixturesDir = "../../fixture/testdata"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger, new(slog.LevelVar))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRunTextReport(t *testing.T) {
	out, err := execute(t, "run",
		"--fixtures", fixturesDir,
		"--iterations", "3",
		"--warmup-iterations", "1",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "### naive")
	assert.Contains(t, out, "### github_events")
	assert.Contains(t, out, "Result: **PASS** (12 cases, 12 completed, 0 failed)")
}

func TestRunJSONReportWithSyntheticSuite(t *testing.T) {
	out, err := execute(t, "run",
		"--fixtures", fixturesDir,
		"--iterations", "2",
		"--warmup-iterations", "0",
		"--synthetic-events", "10",
		"--format", "json",
	)
	require.NoError(t, err)

	var rep harness.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Suites, 3)
	assert.Equal(t, "synthetic_events", rep.Suites[2].Name)
	assert.True(t, rep.Passed())
	assert.Equal(t, 2, rep.Config.Iterations)
}

func TestRunBenchfmtFiltered(t *testing.T) {
	out, err := execute(t, "run",
		"--fixtures", fixturesDir,
		"--iterations", "2",
		"--filter", "^naive/sonic",
		"--format", "benchfmt",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "iterations: 2\n")
	assert.Contains(t, out, "BenchmarkNaive/sonic_decoding 2 ")
	assert.NotContains(t, out, "Github_events")
}

func TestRunMissingFixtureAbortsBeforeAnyCase(t *testing.T) {
	out, err := execute(t, "run", "--fixtures", t.TempDir())
	require.Error(t, err)

	var le *fixture.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "github_events", le.Resource)
	assert.Empty(t, out)
}

func TestRunFailingCaseExitsNonZero(t *testing.T) {
	dir := t.TempDir()

	data, err := os.ReadFile(filepath.Join(fixturesDir, fixture.GitHubEventsFile))
	require.NoError(t, err)

	data = bytes.ReplaceAll(data, []byte("noahlu/mockingbird"), []byte("noahlu/nightingale"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fixture.GitHubEventsFile), data, 0o644))

	out, err := execute(t, "run", "--fixtures", dir, "--iterations", "1", "--warmup-iterations", "0")
	require.ErrorIs(t, err, errCasesFailed)

	assert.Contains(t, out, "| sonic decoding | FAIL |")
	assert.Contains(t, out, "Result: **FAIL**")
}

func TestRunInvalidFlags(t *testing.T) {
	_, err := execute(t, "run", "--fixtures", fixturesDir, "--trim", "0.5")
	assert.Error(t, err)

	_, err = execute(t, "run", "--fixtures", fixturesDir, "--format", "xml")
	assert.Error(t, err)
}

func TestRunHasNoTimeLayoutFlag(t *testing.T) {
	_, err := execute(t, "run", "--fixtures", fixturesDir, "--time-layout", "2006-01-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestRunConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decodebench.yaml")
	body := "fixtures_dir: " + fixturesDir + "\niterations: 2\nwarmup: 0\nformat: json\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := execute(t, "run", "--config", path, "--iterations", "4", "--filter", "^naive/")
	require.NoError(t, err)

	var rep harness.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 4, rep.Config.Iterations)
	assert.Equal(t, 0, rep.Config.Warmup)
	require.Len(t, rep.Suites, 1)
	assert.Equal(t, 4, rep.Suites[0].Cases[0].Stats.Count)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list", "--filter", "jsonparser")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"naive/jsonparser decoding",
		"github_events/jsonparser decoding",
	}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	_, err := execute(t, "generate", "--events", "5", "--seed", "3", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var events []map[string]any
	require.NoError(t, json.Unmarshal(data, &events))
	assert.Len(t, events, 5)
}
