package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_List(t *testing.T) {
	newWorkspace(t)

	code, stdout, stderr := execute("profiles", "list")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Available profiles (3):")
	assert.Contains(t, stdout, "• default")
	assert.Contains(t, stdout, "• leadership")
	assert.Contains(t, stdout, "• technical")
}

func TestProfiles_ListEmptyDir(t *testing.T) {
	newWorkspace(t)
	t.Setenv("PROFILES_DIR", t.TempDir())

	code, stdout, _ := execute("profiles", "list")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "No profiles found")
}

func TestProfiles_Show(t *testing.T) {
	newWorkspace(t)

	code, stdout, stderr := execute("profiles", "show", "technical")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Technical")
	assert.Contains(t, stdout, "Engineering roles")
	assert.Contains(t, stdout, "2 per job")
	assert.Contains(t, stdout, "resume_technical (Engineer)")

	code, _, stderr = execute("profiles", "show", "missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "not found")
}

func TestProfiles_Check(t *testing.T) {
	ws := newWorkspace(t)
	ws.writeProfile(t, "empty.yaml", "")
	ws.writeProfile(t, "badtags.yaml", "profile:\n  name: Bad\nfilters:\n  include_tags: 7\n")
	ws.writeProfile(t, "unparsable.yaml", "profile: [\n")
	ws.writeProfile(t, "list.yaml", "- a\n- b\n")

	tests := []struct {
		name     string
		profile  string
		wantCode int
		want     string
	}{
		{name: "valid", profile: "technical", wantCode: 0, want: "✓ Profile 'technical' is valid"},
		{name: "empty", profile: "empty", wantCode: 1, want: "Profile is empty or None"},
		{name: "wrong tag type", profile: "badtags", wantCode: 1, want: "✗ Profile 'badtags' has"},
		{name: "unparsable", profile: "unparsable", wantCode: 1, want: "✗ Profile 'unparsable' has 1 problem(s):"},
		{name: "not a mapping", profile: "list", wantCode: 1, want: "✗ Profile 'list' has"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute("profiles", "check", tt.profile)
			assert.Equal(t, tt.wantCode, code, stderr)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestProfiles_CheckMissing(t *testing.T) {
	newWorkspace(t)

	code, stdout, stderr := execute("profiles", "check", "missing")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "profile 'missing' not found")
}

func TestProfiles_DatabaseCommandsNeedDatabaseURL(t *testing.T) {
	newWorkspace(t)

	for _, args := range [][]string{
		{"profiles", "import", "technical"},
		{"profiles", "delete", "technical"},
	} {
		code, _, stderr := execute(args...)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "DATABASE_URL is required")
	}
}

func TestProfiles_ImportRejectsInvalidProfile(t *testing.T) {
	ws := newWorkspace(t)
	ws.writeProfile(t, "badtags.yaml", "profile:\n  name: Bad\nfilters:\n  include_tags: 7\n")

	code, _, stderr := execute("profiles", "import", "badtags")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid profile 'badtags'")
}
