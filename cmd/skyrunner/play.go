package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal with live adaptation",
	Long: `Start a play session. The runner fills the left of the terminal; the
adaptation panel on the right shows the classified performance, the
current difficulty profile and cycle activity.

Controls:
  Space/W/Up - Jump
  P/Esc      - Pause
  R          - Respawn (after death)
  N          - Start a fresh session
  Q/Ctrl+C   - Quit

Set SKYRUNNER_API_KEY (and optionally SKYRUNNER_PROVIDER) to enable
the LLM director. Without a credential the game still plays, the
difficulty just never changes.

Examples:
  skyrunner play
  skyrunner play --seed 42 --fps 30
  SKYRUNNER_API_KEY=... SKYRUNNER_PROVIDER=anthropic skyrunner play`,
	Run: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Provider.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Note: no SKYRUNNER_API_KEY set, difficulty will stay fixed.")
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	// The alternate screen owns the terminal, so the session logger is
	// silenced; the manager's session log file still captures the cycle
	// history.
	logger := log.New(io.Discard)

	session, err := tui.NewSession(cfg, runtime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building session: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(cfg, runtime, session); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
