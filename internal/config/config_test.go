package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume_builder.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "resume.yaml", cfg.ResumePath)
	assert.Equal(t, "profiles", cfg.ProfilesDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Auth.JWTExpirationHours)
	assert.True(t, cfg.UseSSL())
	assert.True(t, cfg.RateLimit.IsEnabled())
	assert.Equal(t, 600, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.CleanupInterval)
}

func TestLoad_RateLimitFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "5")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.RateLimit.IsEnabled())
	assert.Equal(t, 5, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, "10.0.0.1, 10.0.0.2", cfg.RateLimit.Whitelist)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
resume_path: data/resume.yaml
profiles_dir: data/profiles
log:
  level: debug
  format: json
server:
  port: 9090
s3:
  endpoint: localhost:9000
  bucket: resumes
  use_ssl: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/resume.yaml", cfg.ResumePath)
	assert.Equal(t, "data/profiles", cfg.ProfilesDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "resumes", cfg.S3.Bucket)
	assert.False(t, cfg.UseSSL())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("PROFILES_DIR", "/etc/profiles")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/etc/profiles", cfg.ProfilesDir)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/resume_builder.yml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed\n")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestValidate(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0644))

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{name: "negative expiration", mutate: func(c *Config) { c.Auth.JWTExpirationHours = -1 }, wantErr: "jwt_expiration_hours"},
		{name: "profiles dir is a file", mutate: func(c *Config) { c.ProfilesDir = notADir }, wantErr: "profiles_dir is not a directory"},
		{name: "output dir is a file", mutate: func(c *Config) { c.OutputDir = notADir }, wantErr: "output_dir is not a directory"},
		{name: "missing profiles dir is fine", mutate: func(c *Config) { c.ProfilesDir = "/nonexistent/profiles" }},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.DefaultLimit = -1 }, wantErr: "rate_limit"},
		{name: "bucket without endpoint", mutate: func(c *Config) { c.S3.Bucket = "resumes" }, wantErr: "s3.endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		ResumePath:  "resume.yaml",
		ProfilesDir: "profiles",
		OutputDir:   "output",
	}
	defaults.Server.Port = 8080
	defaults.Log.Level = "info"

	partial := Config{ResumePath: "custom.yaml"}
	partial.Server.Port = 9000

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "custom.yaml", merged.ResumePath)
	assert.Equal(t, 9000, merged.Server.Port)
	assert.Equal(t, "profiles", merged.ProfilesDir)
	assert.Equal(t, "output", merged.OutputDir)
	assert.Equal(t, "info", merged.Log.Level)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{ResumePath: "custom.yaml"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "custom.yaml", merged.ResumePath)
	assert.Empty(t, merged.ProfilesDir)
}
