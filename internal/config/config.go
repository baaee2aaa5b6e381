// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default values applied by MergeWithDefaults when neither side sets a field
const (
	DefaultGenerationTimeout = "15s"
	DefaultLogLevel          = "info"
	DefaultPort              = 8080
	DefaultShareTTLHours     = 72
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Profile string `json:"profile,omitempty"` // Path to profile JSON file
	Catalog string `json:"catalog,omitempty"` // Path to role catalog (JSON or YAML); embedded default when empty
	Output  string `json:"output,omitempty"`  // Path to write the recommendation set

	// Generation
	Provider          string `json:"provider,omitempty"`           // LLM provider: gemini or openai
	APIKey            string `json:"api_key,omitempty"`            // Gemini API key
	OpenAIAPIKey      string `json:"openai_api_key,omitempty"`     // OpenAI API key
	GenerationTimeout string `json:"generation_timeout,omitempty"` // Per-call timeout, e.g. "15s"
	TopK              int    `json:"top_k,omitempty"`              // Roles to recommend

	// Storage
	DatabaseURL   string `json:"database_url,omitempty"`    // PostgreSQL connection URL
	RedisAddr     string `json:"redis_addr,omitempty"`      // Redis address for shared recommendation sets
	RedisPassword string `json:"redis_password,omitempty"`  // Redis password
	RedisDB       int    `json:"redis_db,omitempty"`        // Redis database index
	ShareTTLHours int    `json:"share_ttl_hours,omitempty"` // Lifetime of sets stored in Redis

	// Server
	Port int `json:"port,omitempty"` // HTTP port

	// Logging
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn or error
	LogFile  string `json:"log_file,omitempty"`  // Append logs to this file instead of stdout
	Verbose  bool   `json:"verbose,omitempty"`   // Print detailed summaries
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("config error: unknown provider %q (want gemini or openai)", c.Provider)
	}

	// Validate numeric ranges
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if c.ShareTTLHours < 0 {
		return fmt.Errorf("config error: 'share_ttl_hours' must be non-negative")
	}

	if c.GenerationTimeout != "" {
		d, err := time.ParseDuration(c.GenerationTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'generation_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'generation_timeout' must be positive")
		}
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}

	// Validate file paths exist (if specified)
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}

	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	// Int fields: use default if zero
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}

	// Fields with built-in defaults
	if result.GenerationTimeout == "" {
		result.GenerationTimeout = firstNonEmpty(defaults.GenerationTimeout, DefaultGenerationTimeout)
	}
	if result.LogLevel == "" {
		result.LogLevel = firstNonEmpty(defaults.LogLevel, DefaultLogLevel)
	}
	if result.Port == 0 {
		result.Port = defaults.Port
		if result.Port == 0 {
			result.Port = DefaultPort
		}
	}
	if result.ShareTTLHours == 0 {
		result.ShareTTLHours = defaults.ShareTTLHours
		if result.ShareTTLHours == 0 {
			result.ShareTTLHours = DefaultShareTTLHours
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the parsed generation timeout, or 0 when unset or invalid
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.GenerationTimeout)
	if err != nil {
		return 0
	}
	return d
}

// ShareTTL returns the Redis lifetime of stored sets
func (c *Config) ShareTTL() time.Duration {
	return time.Duration(c.ShareTTLHours) * time.Hour
}

// ProviderAPIKey returns the API key matching the configured provider
func (c *Config) ProviderAPIKey() string {
	if c.Provider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.APIKey
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
