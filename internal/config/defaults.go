package config

import (
	_ "embed"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
)

//go:embed defaults/dda.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration, used when even
// the embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		DDA: DDAConfig{
			Enabled:         true,
			DeathThreshold:  2,
			CooldownSeconds: 5,
			ExampleCapacity: 5,
			LogDir:          "~/.skyrunner/sessions",
		},
		Provider: ProviderConfig{
			Name:           "gemini",
			MaxTokens:      1024,
			Temperature:    0.4,
			TimeoutSeconds: 10,
		},
		Analyzer: AnalyzerConfig{
			Thresholds: analyzer.DefaultThresholds(),
		},
		Storage: StorageConfig{
			DBPath: "~/.skyrunner/history.db",
		},
	}
}
