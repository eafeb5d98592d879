package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoot_Help(t *testing.T) {
	newWorkspace(t)

	code, stdout, _ := execute("--help")
	assert.Equal(t, 0, code)
	for _, name := range []string{"filter", "validate", "profiles", "export", "serve", "token"} {
		assert.Contains(t, stdout, name)
	}
}

func TestRoot_InvalidProfileStore(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := execute("--profile-store", "s3", "profiles", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --profile-store")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := execute("--log-level", "loud", "profiles", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid log level")
}

func TestRoot_MissingConfigFile(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := execute("--config", "/nonexistent/resume_builder.yml", "profiles", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to read config file")
}

func TestRoot_DBStoreRequiresDatabaseURL(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := execute("--profile-store", "db", "profiles", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "DATABASE_URL is required")
}
