// Package config loads application configuration for the server and CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is used for the config file name and the environment prefix.
	AppName = "career_coach"

	envPrefix = "CAREER_COACH"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server          ServerConfig    `mapstructure:"server"`
	Database        DatabaseConfig  `mapstructure:"database"`
	Redis           RedisConfig     `mapstructure:"redis"`
	Cache           CacheConfig     `mapstructure:"cache"`
	Scoring         ScoringConfig   `mapstructure:"scoring"`
	Search          LimitConfig     `mapstructure:"search"`
	Recommendations LimitConfig     `mapstructure:"recommendations"`
	RateLimit       RateLimitConfig `mapstructure:"rate-limit"`
	Log             LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// CacheConfig controls the search result cache. A zero TTL disables caching.
type CacheConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max-entries"`
}

// ScoringConfig points at the optional model files. Empty paths select the defaults.
type ScoringConfig struct {
	ModelFile      string `mapstructure:"model-file"`
	TagWeightsFile string `mapstructure:"tag-weights-file"`
}

// LimitConfig bounds a ranked listing endpoint.
type LimitConfig struct {
	CandidateLimit int `mapstructure:"candidate-limit"`
	DefaultLimit   int `mapstructure:"default-limit"`
	MaxLimit       int `mapstructure:"max-limit"`
}

// Clamp resolves a requested result count: non-positive selects the default,
// anything else is clamped to 1..MaxLimit.
func (c LimitConfig) Clamp(requested int) int {
	if requested <= 0 {
		return c.DefaultLimit
	}
	return min(max(requested, 1), c.MaxLimit)
}

// RateLimitConfig holds the global request limits. Per-endpoint limits are built in.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default-limit"`
	DefaultWindow   time.Duration `mapstructure:"default-window"`
	CleanupInterval time.Duration `mapstructure:"cleanup-interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers every key with its default so that environment variables
// are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.url", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.max-entries", 1000)
	v.SetDefault("scoring.model-file", "")
	v.SetDefault("scoring.tag-weights-file", "")
	v.SetDefault("search.candidate-limit", 300)
	v.SetDefault("search.default-limit", 30)
	v.SetDefault("search.max-limit", 50)
	v.SetDefault("recommendations.candidate-limit", 300)
	v.SetDefault("recommendations.default-limit", 24)
	v.SetDefault("recommendations.max-limit", 100)
	v.SetDefault("rate-limit.enabled", true)
	v.SetDefault("rate-limit.default-limit", 1000)
	v.SetDefault("rate-limit.default-window", time.Minute)
	v.SetDefault("rate-limit.cleanup-interval", 5*time.Minute)
	v.SetDefault("rate-limit.whitelist", []string{})
	v.SetDefault("rate-limit.blacklist", []string{})
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// New returns a viper instance with defaults and environment bindings applied.
func New() (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// bare names kept for compatibility with existing deployments
	if err := v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("binding DATABASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("redis.url", envPrefix+"_REDIS_URL", "REDIS_URL"); err != nil {
		return nil, fmt.Errorf("binding REDIS_URL environment variable: %w", err)
	}
	return v, nil
}

// Load reads the config file (if any) into v and decodes it. An explicit file must
// exist; without one, career_coach.yaml in the working directory is optional.
func Load(v *viper.Viper, file string) (*AppConfig, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *AppConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config error: 'cache.ttl' must be non-negative")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("config error: 'cache.max-entries' must be non-negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 1 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: 'rate-limit' needs a positive default-limit and default-window")
	}
	if err := c.Search.validate("search"); err != nil {
		return err
	}
	return c.Recommendations.validate("recommendations")
}

func (c LimitConfig) validate(section string) error {
	if c.CandidateLimit < 1 {
		return fmt.Errorf("config error: '%s.candidate-limit' must be positive", section)
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("config error: '%s.max-limit' must be positive", section)
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("config error: '%s.default-limit' must be between 1 and %d", section, c.MaxLimit)
	}
	return nil
}
