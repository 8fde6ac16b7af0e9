package config_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.LoadFrom(map[string]string{})
	s.Require().NoError(err)

	s.Equal(8080, cfg.HTTPPort)
	s.Equal(50051, cfg.GRPCPort)
	s.Empty(cfg.CatalogPath)
	s.Equal(config.SessionStoreMemory, cfg.SessionStore)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal(2*time.Hour, cfg.SessionTTL)
	s.Equal(config.LogFormatText, cfg.LogFormat)
	s.Equal("info", cfg.LogLevel)
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := config.LoadFrom(map[string]string{
		"ARENA_HTTP_PORT":     "9000",
		"ARENA_SESSION_STORE": "redis",
		"ARENA_REDIS_ADDR":    "redis-a:6379, redis-b:6379",
		"ARENA_SESSION_TTL":   "15m",
		"ARENA_LOG_FORMAT":    "json",
		"ARENA_LOG_LEVEL":     "debug",
	})
	s.Require().NoError(err)

	s.Equal(9000, cfg.HTTPPort)
	s.Equal(15*time.Minute, cfg.SessionTTL)
	s.Equal([]string{"redis-a:6379", "redis-b:6379"}, cfg.RedisEndpoints())
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestMalformedValue() {
	_, err := config.LoadFrom(map[string]string{"ARENA_SESSION_TTL": "forever"})

	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	valid := func() *config.Config {
		return &config.Config{
			HTTPPort:     8080,
			GRPCPort:     50051,
			SessionStore: config.SessionStoreMemory,
			SessionTTL:   time.Hour,
			LogFormat:    config.LogFormatText,
			LogLevel:     "info",
		}
	}

	testCases := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{"http port out of range", func(c *config.Config) { c.HTTPPort = 70000 }, "http_port"},
		{"grpc port missing", func(c *config.Config) { c.GRPCPort = 0 }, "grpc_port"},
		{"ports collide", func(c *config.Config) { c.GRPCPort = c.HTTPPort }, "grpc_port"},
		{"unknown store", func(c *config.Config) { c.SessionStore = "disk" }, "session_store"},
		{"redis without address", func(c *config.Config) { c.SessionStore = config.SessionStoreRedis }, "redis_addr"},
		{"zero ttl", func(c *config.Config) { c.SessionTTL = 0 }, "session_ttl"},
		{"unknown format", func(c *config.Config) { c.LogFormat = "xml" }, "log_format"},
		{"unknown level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := valid()
			tc.modify(cfg)

			err := cfg.Validate()

			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestNewLogger() {
	var buf bytes.Buffer
	cfg := &config.Config{LogFormat: config.LogFormatJSON, LogLevel: "warn"}

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "session_id", "abc")

	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), `"session_id":"abc"`)
}
