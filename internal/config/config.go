// Package config loads the arena server's settings from the environment.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the server settings. Zero-value fields pick up their env defaults in Load.
type Config struct {
	HTTPPort     int           `env:"ARENA_HTTP_PORT" envDefault:"8080"`
	GRPCPort     int           `env:"ARENA_GRPC_PORT" envDefault:"50051"`
	CatalogPath  string        `env:"ARENA_CATALOG_PATH"`
	SessionStore string        `env:"ARENA_SESSION_STORE" envDefault:"memory"`
	RedisAddr    string        `env:"ARENA_REDIS_ADDR" envDefault:"localhost:6379"`
	SessionTTL   time.Duration `env:"ARENA_SESSION_TTL" envDefault:"2h"`
	LogFormat    string        `env:"ARENA_LOG_FORMAT" envDefault:"text"`
	LogLevel     string        `env:"ARENA_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	return cfg, nil
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}
	return cfg, nil
}

// Validate checks the settings before the server starts
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		vb.Fieldf("http_port", "must be between 1 and 65535, got %d", c.HTTPPort)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("grpc_port", "must be between 1 and 65535, got %d", c.GRPCPort)
	}
	if c.GRPCPort == c.HTTPPort {
		vb.Field("grpc_port", "must differ from http_port")
	}

	errors.ValidateEnum("session_store", c.SessionStore, []string{SessionStoreMemory, SessionStoreRedis}, vb)
	if c.SessionStore == SessionStoreRedis {
		errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	}
	if c.SessionTTL <= 0 {
		vb.Field("session_ttl", "must be positive")
	}

	errors.ValidateEnum("log_format", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}

// RedisEndpoints splits RedisAddr on commas; more than one address selects a cluster
func (c *Config) RedisEndpoints() []string {
	var endpoints []string
	for _, addr := range strings.Split(c.RedisAddr, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			endpoints = append(endpoints, addr)
		}
	}
	return endpoints
}

// NewLogger builds the process logger for the configured format and level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(name string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
