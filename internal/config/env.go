package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variables read by ApplyEnv
const (
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvProvider          = "LLM_PROVIDER"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvRedisAddr         = "REDIS_ADDR"
	EnvLogLevel          = "LOG_LEVEL"
	EnvGenerationTimeout = "GENERATION_TIMEOUT"
)

// ApplyEnv overwrites fields with any of the supported environment variables that are set.
// GENERATION_TIMEOUT must be a valid positive duration.
func (c *Config) ApplyEnv() error {
	setString(&c.APIKey, EnvGeminiAPIKey)
	setString(&c.OpenAIAPIKey, EnvOpenAIAPIKey)
	setString(&c.Provider, EnvProvider)
	setString(&c.DatabaseURL, EnvDatabaseURL)
	setString(&c.RedisAddr, EnvRedisAddr)
	setString(&c.LogLevel, EnvLogLevel)

	if timeout := os.Getenv(EnvGenerationTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvGenerationTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got: %s", EnvGenerationTimeout, timeout)
		}
		c.GenerationTimeout = timeout
	}

	return nil
}

// FromEnv builds a configuration from defaults and the environment
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Config{})
	return &merged, nil
}

func setString(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}
