package tui

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/dda"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
	"github.com/vovakirdan/skyrunner/internal/effector"
	"github.com/vovakirdan/skyrunner/internal/game"
	"github.com/vovakirdan/skyrunner/internal/policy"
	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

type fixedGenerator struct{ response string }

func (g *fixedGenerator) Name() string { return "fixed" }

func (g *fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.response, nil
}

func newTestSession(t *testing.T, response string) *Session {
	t.Helper()
	logger := log.New(io.Discard)

	monitor := telemetry.NewCollector()
	an := analyzer.New(analyzer.DefaultThresholds())
	engine := policy.NewEngine(&fixedGenerator{response: response},
		difficulty.DefaultProfile(), policy.Config{}, logger)

	runner := game.New(core.DefaultConfig(), game.Events{})
	eff := effector.New(runner.Tuners, runner, logger)
	mgr := dda.New(monitor, an, engine, eff, nil,
		dda.Config{Enabled: true, DeathThreshold: 1}, logger)
	t.Cleanup(mgr.Close)

	return &Session{
		Runner:   runner,
		Manager:  mgr,
		Engine:   engine,
		Monitor:  monitor,
		Analyzer: an,
		logger:   logger,
	}
}

// A planned adjustment must only reach the game from Update, the same
// goroutine that drives Step, never from the background plan command.
func TestCycleCommitsFromUpdate(t *testing.T) {
	s := newTestSession(t, `{"run_speed": 6.5}`)
	m := NewModel(s, core.DefaultConfig())

	profile, symptom, err := s.Manager.PlanCycle(context.Background())
	if err != nil {
		t.Fatalf("PlanCycle: %v", err)
	}
	if got := s.Runner.RunSpeed(); got != game.DefaultRunSpeed {
		t.Fatalf("plan stage changed run speed to %g", got)
	}

	m.cycleRunning = true
	next, _ := m.Update(cycleDoneMsg{profile: profile, symptom: symptom})
	updated := next.(Model)

	if updated.cycleRunning {
		t.Error("cycleRunning still set after commit")
	}
	if !updated.hasSymptom || updated.symptom != symptom {
		t.Errorf("panel symptom = %v (shown %v), want %v", updated.symptom, updated.hasSymptom, symptom)
	}
	if got := s.Runner.RunSpeed(); got != 6.5 {
		t.Errorf("run speed = %g after commit, want 6.5", got)
	}
	if s.Manager.Adjustments() != 1 {
		t.Errorf("adjustments = %d, want 1", s.Manager.Adjustments())
	}
}

func TestFailedCycleCommitsNothing(t *testing.T) {
	s := newTestSession(t, "{}")
	m := NewModel(s, core.DefaultConfig())

	m.cycleRunning = true
	next, _ := m.Update(cycleDoneMsg{err: policy.ErrNoProfile})
	updated := next.(Model)

	if updated.cycleRunning {
		t.Error("cycleRunning still set after failed cycle")
	}
	if got := s.Runner.RunSpeed(); got != game.DefaultRunSpeed {
		t.Errorf("run speed = %g after failed cycle, want default", got)
	}
	if s.Manager.Adjustments() != 0 {
		t.Errorf("adjustments = %d, want 0", s.Manager.Adjustments())
	}
}
