package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/game"
	"github.com/vovakirdan/skyrunner/internal/platform/tui"
)

var (
	flagRunTicks int
	flagBotSkill float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Headless bot run exercising the full adaptation loop",
	Long: `Run the simulation without a terminal UI. A scripted bot plays the
runner; deaths trigger adaptation cycles exactly as in interactive
play. Useful for evaluating configs, thresholds and prompts.

At --skill 0 the bot barely reacts and dies constantly; at 1 it clears
most terrain. Low skill is the interesting case: it drives the
controller toward easier profiles.

Examples:
  skyrunner run --ticks 36000 --skill 0.3
  SKYRUNNER_API_KEY=... skyrunner run --ticks 72000`,
	Run: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagRunTicks, "ticks", 36000, "Number of simulation ticks (36000 = 10 minutes at 60 fps)")
	runCmd.Flags().Float64Var(&flagBotSkill, "skill", 0.5, "Bot skill in [0,1]")
}

func runHeadless(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyrunner-run",
	})

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	}

	session, err := tui.NewSession(cfg, runtime, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building session: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	bot := game.NewBot(flagBotSkill)
	ctx := context.Background()

	logger.Info("starting headless run",
		"ticks", flagRunTicks, "skill", flagBotSkill, "seed", seed)

	for i := 0; i < flagRunTicks; i++ {
		frame := bot.Act(session.Runner)
		state := session.Runner.Step(frame)

		// Cycles run synchronously here: the bot can wait.
		if state.Dead && session.Manager.ShouldTrigger() {
			if cycleErr := session.Manager.RunCycle(ctx); cycleErr != nil {
				logger.Error("adaptation cycle failed", "error", cycleErr)
				break
			}
		}
	}

	state := session.Runner.State()
	symptom := session.Analyzer.Classify(session.Monitor.Snapshot())

	logger.Info("run finished",
		"deaths", state.Deaths,
		"coins", state.Coins,
		"adjustments", session.Manager.Adjustments(),
		"performance", symptom.String(),
	)

	fmt.Println("Final difficulty profile:")
	for _, v := range session.Engine.CurrentProfile().Variables() {
		fmt.Printf("  %-24s %.3f\n", v.Name, v.Value)
	}
}
