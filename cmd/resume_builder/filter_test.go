package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFilter_Stdout(t *testing.T) {
	newWorkspace(t)

	code, stdout, stderr := execute("filter", "--profile", "technical")
	require.Equal(t, 0, code, stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))

	work := doc["work_experience"].(map[string]any)
	require.Contains(t, work, "Acme")
	assert.NotContains(t, work, "Initech", "untagged positions need 'all'")

	positions := work["Acme"].([]any)
	require.Len(t, positions, 1)
	position := positions[0].(map[string]any)
	assert.Equal(t, "Staff Engineer", position["job_title"])
	assert.Len(t, position["responsibilities"], 2)
	assert.Equal(t, []any{"technical"}, position["include_in"])
	assert.Empty(t, doc["education"])
	assert.Equal(t, "Jane Doe", doc["basics"].(map[string]any)["name"])
}

func TestFilter_DefaultProfileAndClean(t *testing.T) {
	newWorkspace(t)

	code, stdout, stderr := execute("filter", "--clean", "--compact")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "\n  ")

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	work := doc["work_experience"].(map[string]any)
	assert.Equal(t, []string{"Initech"}, keys(work), "tagged positions are left out of 'all'")
	assert.Len(t, doc["education"], 1)
	assert.NotContains(t, stdout, "include_in")
}

func TestFilter_OutputFile(t *testing.T) {
	ws := newWorkspace(t)
	out := filepath.Join(ws.dir, "out", "leadership.json")

	code, stdout, stderr := execute("filter", "-p", "leadership", "-o", out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Leadership")
	assert.Contains(t, stdout, "FILTER SUMMARY")
	assert.Contains(t, stdout, "Output: "+out)
	assert.Contains(t, stderr, "filtered résumé written")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	work := doc["work_experience"].(map[string]any)
	assert.ElementsMatch(t, []string{"Acme", "Initech"}, keys(work))
	assert.Len(t, work["Acme"], 1)
}

func TestFilter_YAMLOutput(t *testing.T) {
	ws := newWorkspace(t)
	out := filepath.Join(ws.dir, "technical.yaml")

	code, _, stderr := execute("filter", "-p", "technical", "-o", out)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "work_experience")
}

func TestFilter_Errors(t *testing.T) {
	ws := newWorkspace(t)

	code, _, stderr := execute("filter", "-p", "missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "profile 'missing' not found")

	code, _, stderr = execute("filter", "-i", filepath.Join(ws.dir, "nope.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to load résumé")

	require.NoError(t, os.WriteFile(filepath.Join(ws.dir, "escaped.yaml"), []byte(testProfiles["default.yaml"]), 0644))
	code, _, stderr = execute("filter", "-p", "../escaped")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid profile name")

	code, _, stderr = execute("filter", "extra")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
