// Package config provides configuration loading and validation for the CLI and the HTTP server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gotify/configor"
)

// DefaultFile is the configuration file picked up from the working directory when present
const DefaultFile = "resume_builder.yml"

// Config is the application configuration. Values come from struct defaults, then the
// optional YAML file, then environment variables.
type Config struct {
	ResumePath  string `yaml:"resume_path" default:"resume.yaml" env:"RESUME_PATH"`
	ProfilesDir string `yaml:"profiles_dir" default:"profiles" env:"PROFILES_DIR"`
	OutputDir   string `yaml:"output_dir" default:"output" env:"OUTPUT_DIR"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	Log struct {
		Level  string `yaml:"level" default:"info" env:"LOG_LEVEL"`
		Format string `yaml:"format" default:"text" env:"LOG_FORMAT"`
	} `yaml:"log"`

	Server struct {
		Port           int    `yaml:"port" default:"8080" env:"PORT"`
		AllowedOrigins string `yaml:"allowed_origins" default:"*" env:"ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Auth struct {
		JWTSecret          string `yaml:"jwt_secret" env:"JWT_SECRET"`
		JWTExpirationHours int    `yaml:"jwt_expiration_hours" default:"24" env:"JWT_EXPIRATION_HOURS"`
	} `yaml:"auth"`

	RateLimit RateLimit `yaml:"rate_limit"`

	S3 struct {
		Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
		AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
		SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
		Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
		Region    string `yaml:"region" env:"S3_REGION"`
		UseSSL    *bool  `yaml:"use_ssl" default:"true" env:"S3_USE_SSL"`
	} `yaml:"s3"`
}

// RateLimit configures the per-client token buckets of the HTTP server
type RateLimit struct {
	Enabled         *bool         `yaml:"enabled" default:"true" env:"RATE_LIMIT_ENABLED"`
	DefaultLimit    int           `yaml:"default_limit" default:"600" env:"RATE_LIMIT_DEFAULT_LIMIT"`
	DefaultWindow   time.Duration `yaml:"default_window" default:"1m" env:"RATE_LIMIT_DEFAULT_WINDOW"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" default:"5m" env:"RATE_LIMIT_CLEANUP_INTERVAL"`
	Whitelist       string        `yaml:"whitelist" env:"RATE_LIMIT_WHITELIST"`
	Blacklist       string        `yaml:"blacklist" env:"RATE_LIMIT_BLACKLIST"`
}

// IsEnabled reports whether rate limiting is on. Unset means on.
func (r RateLimit) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Load builds the configuration. path names a YAML file and may be empty, in which
// case DefaultFile is used if it exists. A non-empty path that does not exist is an error.
func Load(path string) (*Config, error) {
	var files []string
	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		files = append(files, path)
	default:
		if _, err := os.Stat(DefaultFile); err == nil {
			files = append(files, DefaultFile)
		}
	}

	cfg := new(Config)
	if err := configor.New(&configor.Config{}).Load(cfg, files...); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Required values for a particular command (database, S3, JWT) are checked where they
// are used, not here.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or text, got %q", c.Log.Format)
	}

	if c.Auth.JWTExpirationHours < 0 {
		return fmt.Errorf("config error: 'auth.jwt_expiration_hours' must be non-negative")
	}

	if c.ProfilesDir != "" {
		if info, err := os.Stat(c.ProfilesDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: profiles_dir is not a directory: %s", c.ProfilesDir)
		}
	}
	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	if c.RateLimit.IsEnabled() && (c.RateLimit.DefaultLimit < 0 || c.RateLimit.DefaultWindow < 0) {
		return fmt.Errorf("config error: 'rate_limit' limit and window must be non-negative")
	}

	if c.S3.Bucket != "" && c.S3.Endpoint == "" {
		return fmt.Errorf("config error: 's3.endpoint' is required when 's3.bucket' is set")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to let CLI flags override config file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.ProfilesDir == "" {
		result.ProfilesDir = defaults.ProfilesDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.AllowedOrigins == "" {
		result.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if result.Auth.JWTSecret == "" {
		result.Auth.JWTSecret = defaults.Auth.JWTSecret
	}
	if result.Auth.JWTExpirationHours == 0 {
		result.Auth.JWTExpirationHours = defaults.Auth.JWTExpirationHours
	}
	if result.S3.Bucket == "" {
		result.S3 = defaults.S3
	}

	return result
}

// UseSSL reports whether the S3 endpoint is reached over TLS
func (c *Config) UseSSL() bool {
	return c.S3.UseSSL == nil || *c.S3.UseSSL
}
