package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/config"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/dda"
	"github.com/vovakirdan/skyrunner/internal/effector"
	"github.com/vovakirdan/skyrunner/internal/game"
	"github.com/vovakirdan/skyrunner/internal/policy"
	"github.com/vovakirdan/skyrunner/internal/storage"
	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

// Session bundles the runner with its fully wired adaptation stack.
// One session corresponds to one play sitting: local terminal or a
// single SSH connection.
type Session struct {
	Runner   *game.Runner
	Manager  *dda.Manager
	Engine   *policy.Engine
	Monitor  *telemetry.Collector
	Analyzer *analyzer.Analyzer

	store  *storage.Store
	logger *log.Logger
}

// NewSession wires the monitor, analyzer, policy engine, effector and
// manager around a fresh runner. Storage is best-effort: a failed open
// is logged and the session runs without history.
func NewSession(cfg *config.Config, runtime core.RuntimeConfig, logger *log.Logger) (*Session, error) {
	monitor := telemetry.NewCollector()
	an := analyzer.New(cfg.Analyzer.Thresholds)

	gen, err := cfg.Generator()
	if err != nil {
		return nil, err
	}
	if gen == nil {
		logger.Warn("no provider credential set, difficulty will stay fixed")
	}

	engine := policy.NewEngine(gen, cfg.Template(), policy.Config{
		ExampleCapacity: cfg.DDA.ExampleCapacity,
		RequestTimeout:  cfg.Provider.Timeout(),
	}, logger)

	var store *storage.Store
	if cfg.Storage.DBPath != "" {
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
			store = nil
		}
	}

	// The manager does not exist yet when the runner is built; the event
	// closures capture it and only fire from Step, after wiring is done.
	var mgr *dda.Manager
	runner := game.New(runtime, game.Events{
		OnDistance: func(x float64) { mgr.HandleDistance(x) },
		OnDeath:    func() { mgr.HandleDeath() },
		OnCoin:     func(delta int) { mgr.HandleCoins(delta) },
		OnJump:     func() { mgr.HandleJump() },
		OnTick:     func(dt float64) { mgr.HandleTick(dt) },
		OnRunReset: func() { mgr.HandleRunReset() },
	})

	eff := effector.New(runner.Tuners, runner, logger)

	logDir, err := config.ExpandHome(cfg.DDA.LogDir)
	if err != nil {
		logger.Warn("could not resolve session log dir", "error", err)
		logDir = ""
	}

	mgr = dda.New(monitor, an, engine, eff, store, dda.Config{
		Enabled:        cfg.DDA.Enabled,
		DeathThreshold: cfg.DDA.DeathThreshold,
		Cooldown:       cfg.DDA.Cooldown(),
		LogDir:         logDir,
	}, logger)

	return &Session{
		Runner:   runner,
		Manager:  mgr,
		Engine:   engine,
		Monitor:  monitor,
		Analyzer: an,
		store:    store,
		logger:   logger,
	}, nil
}

// Close flushes the session log and releases storage.
func (s *Session) Close() {
	s.Manager.Close()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("could not close history database", "error", err)
		}
	}
}
