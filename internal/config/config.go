// Package config provides YAML-based configuration for the adaptive
// difficulty controller, with embedded defaults and environment
// overrides for credentials.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
	"github.com/vovakirdan/skyrunner/internal/provider"
)

// Config is the full configuration surface of the controller.
type Config struct {
	DDA      DDAConfig      `yaml:"dda"`
	Provider ProviderConfig `yaml:"provider"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Storage  StorageConfig  `yaml:"storage"`
}

// DDAConfig gates the adaptation loop itself.
type DDAConfig struct {
	// Enabled turns the whole loop on or off. Disabled still collects
	// metrics, it just never plans or applies.
	Enabled bool `yaml:"enabled" env:"SKYRUNNER_DDA_ENABLED"`

	// DeathThreshold is how many deaths accumulate before a cycle may
	// trigger.
	DeathThreshold int `yaml:"death_threshold" env:"SKYRUNNER_DEATH_THRESHOLD"`

	// CooldownSeconds is the minimum time between adjustments.
	CooldownSeconds float64 `yaml:"cooldown_seconds" env:"SKYRUNNER_COOLDOWN_SECONDS"`

	// ExampleCapacity bounds the rolling few-shot buffer.
	ExampleCapacity int `yaml:"example_capacity"`

	// LogDir is where session logs are flushed at teardown.
	LogDir string `yaml:"log_dir" env:"SKYRUNNER_LOG_DIR"`

	// Bounds optionally overrides per-variable schema ranges.
	Bounds map[string]difficulty.Bound `yaml:"bounds"`
}

// Cooldown returns the adjustment cooldown as a duration.
func (c DDAConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds * float64(time.Second))
}

// ProviderConfig selects and authenticates the external model endpoint.
type ProviderConfig struct {
	// Name selects the provider: "gemini" or "anthropic".
	Name string `yaml:"name" env:"SKYRUNNER_PROVIDER"`

	// APIKey is the credential. Prefer setting it via environment so it
	// never lives in a config file.
	APIKey string `yaml:"api_key" env:"SKYRUNNER_API_KEY"`

	// Model overrides the provider's default model id when non-empty.
	Model string `yaml:"model" env:"SKYRUNNER_MODEL"`

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `yaml:"base_url" env:"SKYRUNNER_BASE_URL"`

	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration, falling back to
// the provider default when unset.
func (c ProviderConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return provider.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// AnalyzerConfig carries the classifier threshold ladders.
type AnalyzerConfig struct {
	Thresholds analyzer.Thresholds `yaml:"thresholds"`
}

// StorageConfig locates the session history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"SKYRUNNER_DB"`
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch provider.Name(c.Provider.Name) {
	case provider.Gemini, provider.Anthropic:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider.Name)
	}
	if c.DDA.DeathThreshold < 1 {
		return fmt.Errorf("config: death_threshold must be at least 1, got %d", c.DDA.DeathThreshold)
	}
	if c.DDA.CooldownSeconds < 0 {
		return fmt.Errorf("config: cooldown_seconds must not be negative")
	}
	return nil
}

// Template builds the difficulty template profile, applying any bound
// overrides from the config.
func (c *Config) Template() *difficulty.Profile {
	if len(c.DDA.Bounds) == 0 {
		return difficulty.DefaultProfile()
	}
	return difficulty.ProfileWithBounds(c.DDA.Bounds)
}

// Generator constructs the configured provider client, or nil when no
// credential is available. A nil generator is not an error: the policy
// engine degrades to "no change" without one.
func (c *Config) Generator() (provider.Generator, error) {
	if c.Provider.APIKey == "" {
		return nil, nil
	}
	return provider.New(provider.Name(c.Provider.Name), provider.Options{
		APIKey:      c.Provider.APIKey,
		Model:       c.Provider.Model,
		BaseURL:     c.Provider.BaseURL,
		MaxTokens:   c.Provider.MaxTokens,
		Temperature: c.Provider.Temperature,
		Timeout:     c.Provider.Timeout(),
	})
}
