package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
)

// Rule limits one route. A Path ending in "/" matches every path below it.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// FromSettings builds a Config from the application settings using DefaultRules.
func FromSettings(s config.RateLimit) *Config {
	if !s.IsEnabled() {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       parseIPList(s.Whitelist),
		Blacklist:       parseIPList(s.Blacklist),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the per-route limits of the API. Reads fall back to
// the default limit and /health is never limited.
func DefaultRules() []Rule {
	return []Rule{
		// filtering and validation parse whole documents
		{Path: "/filter", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/validate", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// profile writes
		{Path: "/profiles/", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/profiles/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// Match returns the rule for a request, or nil when none applies.
// Exact paths win over prefixes.
func Match(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &Rule{Path: path, Method: method}
	}

	for i := range rules {
		if rules[i].Path == path && rules[i].Method == method {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
