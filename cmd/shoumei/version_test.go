package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoumei/internal/version"
)

func TestVersionPretty(t *testing.T) {
	stdout, _, err := runCLI(t, t.TempDir(), "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "shoumei "+version.Version+" - "+versionTagline)
	assert.Contains(t, stdout, "--full")
}

func TestVersionJSONFull(t *testing.T) {
	prevCommit, prevDate := version.GitCommit, version.BuildDate
	t.Cleanup(func() {
		version.GitCommit, version.BuildDate = prevCommit, prevDate
	})
	version.GitCommit = "0123456789abcdef"
	version.BuildDate = ""

	stdout, _, err := runCLI(t, t.TempDir(), "version", "--format", "json", "--full")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload), stdout)
	assert.Equal(t, "shoumei", payload.Tool)
	assert.Equal(t, "0123456789abcdef", payload.GitCommit)
	assert.Equal(t, "unknown", payload.BuildDate)
}

func TestVersionRejectsFormat(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "version", "--format", "yaml")
	require.ErrorContains(t, err, "unsupported format")
}
