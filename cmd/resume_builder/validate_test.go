package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeWithWarning = `basics:
  name: Jane Doe
  email: jane@example.com
awards:
  - title: Best Paper
    date: 2021-05
    awarder: ACM
    include_in: [all, leadership]
`

const resumeWithErrors = `basics:
  name: Jane Doe
  email: not-an-email
education:
  - institution: State University
    include_in: []
`

func TestValidate_ExitCodes(t *testing.T) {
	ws := newWorkspace(t)
	warning := ws.writeFile(t, "warning.yaml", resumeWithWarning)
	broken := ws.writeFile(t, "broken.yaml", resumeWithErrors)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{name: "clean resume", args: []string{"validate"}, wantCode: 0, want: "VALIDATION PASSED"},
		{name: "clean resume strict", args: []string{"validate", "--strict"}, wantCode: 0},
		{name: "warnings", args: []string{"validate", warning}, wantCode: 0, want: "With warnings"},
		{name: "warnings strict", args: []string{"validate", "-s", warning}, wantCode: 2, want: "WARNINGS (1)"},
		{name: "errors", args: []string{"validate", broken}, wantCode: 1, want: "Invalid email format"},
		{name: "missing file", args: []string{"validate", "/nonexistent/resume.yaml"}, wantCode: 1, want: "File not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(tt.args...)
			assert.Equal(t, tt.wantCode, code, stderr)
			assert.Contains(t, stdout, tt.want)
			assert.NotContains(t, stderr, "Error:", "exit codes are not reported as errors")
		})
	}
}

func TestValidate_Verbose(t *testing.T) {
	newWorkspace(t)

	code, stdout, _ := execute("validate", "--verbose")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "INFO")
	assert.Contains(t, stdout, "2 companies, 3 positions")
}

func TestValidate_JSON(t *testing.T) {
	ws := newWorkspace(t)
	broken := ws.writeFile(t, "broken.yaml", resumeWithErrors)

	code, stdout, _ := execute("validate", "--json", broken)
	assert.Equal(t, 1, code)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &body))
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, float64(1), body["exit_code"])
	assert.NotEmpty(t, body["errors"])
	assert.Contains(t, body["summary"], "Errors:")
}
