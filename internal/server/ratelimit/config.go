package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" matches by prefix)
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromSettings builds a limiter configuration from the application config.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the built-in per-endpoint limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// credential endpoints are the tightest
		{Path: "/auth/register", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 10},

		// scoring parses full resumes
		{Path: "/ats/score", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resume/score", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},

		// profile writes
		{Path: "/me/", Method: http.MethodPut, Limit: 60, Window: time.Minute, Burst: 10},

		// search and autocomplete
		{Path: "/search/jobs", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/search/skills-suggest", Method: http.MethodPost, Limit: 600, Window: time.Minute, Burst: 60},
	}
}

// ipSet turns a list of addresses into a lookup set, skipping blanks.
func ipSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
