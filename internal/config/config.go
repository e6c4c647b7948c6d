// Package config handles application configuration from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Geocoding  GeocodingConfig  `yaml:"geocoding"`
	RateLimits RateLimitConfig  `yaml:"rate_limits"`
	Sink       SinkConfig       `yaml:"sink"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type ClassifierConfig struct {
	Provider        string  `yaml:"provider"` // openai, gemini
	Model           string  `yaml:"model"`
	APIKey          string  `yaml:"api_key"`
	DefaultLanguage string  `yaml:"default_language"` // en, te
	CallsPerMinute  float64 `yaml:"calls_per_minute"` // outbound pacing
	MaxImageBytes   int64   `yaml:"max_image_bytes"`
}

type GeocodingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	BaseURL      string `yaml:"base_url"`
	UserAgent    string `yaml:"user_agent"`
	CacheTTLHours int   `yaml:"cache_ttl_hours"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type SinkConfig struct {
	// Path of the append-only JSONL file for accepted reports. Empty means
	// log-only emission.
	Path string `yaml:"path"`
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
		Classifier: ClassifierConfig{
			Provider:        "openai",
			Model:           "gpt-4.1-nano",
			DefaultLanguage: "en",
			CallsPerMinute:  30,
			MaxImageBytes:   8 << 20,
		},
		Geocoding: GeocodingConfig{
			Enabled:       true,
			BaseURL:       "https://nominatim.openstreetmap.org",
			UserAgent:     "paveup/1.0",
			CacheTTLHours: 24,
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
			return nil, fmt.Errorf("config file not found: %s (run with --generate-config to create one)", path)
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
	sample := `# PaveUp Configuration
# See documentation for all options

server:
  port: 8080

classifier:
  provider: openai  # openai or gemini
  model: gpt-4.1-nano
  api_key: ${OPENAI_API_KEY}
  default_language: en  # en or te
  calls_per_minute: 30
  max_image_bytes: 8388608

  # For Google Gemini:
  # provider: gemini
  # model: gemini-1.5-flash
  # api_key: ${GEMINI_API_KEY}

geocoding:
  enabled: true
  base_url: https://nominatim.openstreetmap.org
  user_agent: paveup/1.0
  cache_ttl_hours: 24

rate_limits:
  requests_per_minute: 60

sink:
  # Accepted reports are appended here as JSON lines; leave empty to log only.
  path: ""

logging:
  level: info  # debug, info, warn, error
  format: json # json or text
`
	return os.WriteFile(path, []byte(sample), 0644)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	validProviders := map[string]bool{"openai": true, "gemini": true}
	if !validProviders[c.Classifier.Provider] {
		return fmt.Errorf("unsupported classifier provider: %s", c.Classifier.Provider)
	}

	if c.Classifier.APIKey == "" {
		return fmt.Errorf("%s API key is required", c.Classifier.Provider)
	}

	if c.Classifier.DefaultLanguage != "en" && c.Classifier.DefaultLanguage != "te" {
		return fmt.Errorf("unsupported default language: %s", c.Classifier.DefaultLanguage)
	}

	if c.Classifier.CallsPerMinute <= 0 {
		return fmt.Errorf("classifier calls_per_minute must be positive")
	}

	if c.Geocoding.Enabled && c.Geocoding.BaseURL == "" {
		return fmt.Errorf("geocoding base_url is required when geocoding is enabled")
	}

	return nil
}

// interpolateEnvVars replaces ${VAR_NAME} with environment variable values.
func interpolateEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if not set
	})
}
