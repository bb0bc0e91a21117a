package fixture

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fx, err := Provider{Dir: "testdata"}.Load()
	require.NoError(t, err)

	assert.True(t, json.Valid(fx.Naive), "naive payload must be valid JSON")
	assert.True(t, json.Valid(fx.GitHubEvents), "events payload must be valid JSON")

	var events []struct {
		Repo struct {
			URL string `json:"url"`
		} `json:"repo"`
	}
	require.NoError(t, json.Unmarshal(fx.GitHubEvents, &events))
	require.GreaterOrEqual(t, len(events), 2)
	assert.Equal(t, GitHubEventsGolden.SecondRepoURL, events[1].Repo.URL)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	fx, err := Provider{Dir: dir}.Load()
	require.Error(t, err)
	assert.Nil(t, fx)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "github_events", le.Resource)
	assert.Equal(t, filepath.Join(dir, GitHubEventsFile), le.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, IsLoadError(err))
	assert.Contains(t, err.Error(), "github_events")
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, GitHubEventsFile), nil, 0o644))

	_, err := Provider{Dir: dir}.Load()
	assert.True(t, IsLoadError(err))
}

func TestNaivePayloadGolden(t *testing.T) {
	var doc struct {
		SupportedOutputs []string `json:"supported_outputs"`
		Developer        struct {
			UserID     int    `json:"user_id"`
			WebsiteURL string `json:"website_url"`
		} `json:"developer"`
	}
	require.NoError(t, json.Unmarshal([]byte(NaivePayload), &doc))

	assert.Len(t, doc.SupportedOutputs, 6)
	assert.Equal(t, NaiveGolden.SecondOutput, doc.SupportedOutputs[1])
	assert.Equal(t, NaiveGolden.UserID, doc.Developer.UserID)
	assert.Equal(t, NaiveGolden.WebsiteURL, doc.Developer.WebsiteURL)
}
