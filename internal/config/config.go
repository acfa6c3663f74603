// Package config handles application configuration from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Limits     LimitsConfig    `yaml:"limits"`
	OpenAI     OpenAIConfig    `yaml:"openai"`
	Database   DatabaseConfig  `yaml:"database"`
	RateLimits RateLimitConfig `yaml:"rate_limits"`
	Logging    LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// LimitsConfig reproduces the ceilings the original hosting platform
// imposed on each invocation: a hard request-size cap checked against
// Content-Length before the body is read, and an upper bound on total
// handler execution time.
type LimitsConfig struct {
	MaxRequestBytes int64         `yaml:"max_request_bytes"`
	HandlerTimeout  time.Duration `yaml:"handler_timeout"`
}

type OpenAIConfig struct {
	APIKey      string `yaml:"api_key"`
	ChatModel   string `yaml:"chat_model"`
	VisionModel string `yaml:"vision_model"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Limits: LimitsConfig{
			MaxRequestBytes: 4608 * 1024, // 4.5 MiB
			HandlerTimeout:  60 * time.Second,
		},
		OpenAI: OpenAIConfig{
			ChatModel:   "gpt-4o",
			VisionModel: "gpt-4o",
		},
		Database: DatabaseConfig{
			Path: "./data/notary.db",
		},
		RateLimits: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run with -generate-config to create one)", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content := interpolateEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GenerateSample creates a sample configuration file.
func GenerateSample(path string) error {
	sample := `# Notary AI service configuration

server:
  port: 8080

limits:
  max_request_bytes: 4718592  # 4.5 MiB, checked against Content-Length
  handler_timeout: 60s

openai:
  api_key: ${OPENAI_API_KEY}
  chat_model: gpt-4o
  vision_model: gpt-4o

database:
  path: ./data/notary.db

rate_limits:
  requests_per_minute: 60

logging:
  level: info  # debug, info, warn, error
  format: json # json or text
`
	return os.WriteFile(path, []byte(sample), 0644)
}

// Validate checks that the configuration is valid.
//
// A missing OpenAI API key is deliberately not an error here: the service
// starts without one and reports "not configured" on first use, so that a
// misconfigured deployment fails with a diagnosable response rather than
// a crash at boot.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Limits.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be positive")
	}
	if c.Limits.HandlerTimeout <= 0 {
		return fmt.Errorf("handler_timeout must be positive")
	}
	if c.RateLimits.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

// interpolateEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables are replaced with an empty string so that a missing
// credential reads as absent instead of the literal placeholder.
func interpolateEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		return os.Getenv(varName)
	})
}
