// skyrunner is a terminal endless platformer with an LLM-driven
// dynamic difficulty controller.
//
// Usage:
//
//	skyrunner play         - Play in the terminal with live adaptation
//	skyrunner run          - Headless bot run exercising the full loop
//	skyrunner serve        - Start SSH server for remote play
//	skyrunner sessions     - List persisted adaptation sessions
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible terrain
//	--config <path>  - Path to a custom config YAML
//	--db <path>      - Override the history database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyrunner",
	Short: "Skyrunner - an endless platformer that tunes itself to you",
	Long: `Skyrunner is a terminal endless platformer whose difficulty adapts
while you play. A controller watches how you perform, classifies it,
and asks an LLM difficulty director for new parameter values between
runs.

Available commands:
  play      - Play in the terminal with the adaptation panel
  run       - Headless bot run for evaluating configs
  serve     - Start SSH server for remote play
  sessions  - View persisted adaptation sessions

Examples:
  skyrunner play
  skyrunner play --seed 42
  SKYRUNNER_API_KEY=... skyrunner play
  skyrunner run --ticks 36000 --skill 0.3
  skyrunner serve --ssh :2222
  skyrunner sessions`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Override history database path")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// loadConfig loads the controller config and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return &cfg, nil
}
