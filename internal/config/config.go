// Package config reads ocsf-mapper settings from OCSF_MAPPER_* environment
// variables. The CLI uses these as flag defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all ocsf-mapper configuration.
type Config struct {
	Schema   SchemaConfig
	Resolver ResolverConfig
	Suggest  SuggestConfig
	Log      LogConfig
}

// SchemaConfig holds schema source settings.
type SchemaConfig struct {
	Path string
	// CacheTTL is how long a loaded catalog is served before a reload.
	// Zero or negative never expires.
	CacheTTL time.Duration
}

// ResolverConfig holds mapping resolution settings.
type ResolverConfig struct {
	MaxDepth        int
	CaptureUnmapped bool
}

// SuggestConfig holds suggestion thresholds.
type SuggestConfig struct {
	MinScore float64
	MinGap   float64
	Depth    int
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "console", "json"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Schema: SchemaConfig{
			Path:     getenv("OCSF_MAPPER_SCHEMA", "schema.json"),
			CacheTTL: getenvDuration("OCSF_MAPPER_CACHE_TTL", 5*time.Minute),
		},
		Resolver: ResolverConfig{
			MaxDepth:        getenvInt("OCSF_MAPPER_MAX_DEPTH", 8),
			CaptureUnmapped: getenvBool("OCSF_MAPPER_CAPTURE_UNMAPPED", true),
		},
		Suggest: SuggestConfig{
			MinScore: getenvFloat("OCSF_MAPPER_SUGGEST_MIN_SCORE", 0.7),
			MinGap:   getenvFloat("OCSF_MAPPER_SUGGEST_MIN_GAP", 0.15),
			Depth:    getenvInt("OCSF_MAPPER_SUGGEST_DEPTH", 1),
		},
		Log: LogConfig{
			Level:  getenv("OCSF_MAPPER_LOG_LEVEL", "info"),
			Format: getenv("OCSF_MAPPER_LOG_FORMAT", "console"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
