package dda

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
	"github.com/vovakirdan/skyrunner/internal/effector"
	"github.com/vovakirdan/skyrunner/internal/policy"
	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

type scriptedGenerator struct {
	response string
	calls    int
}

func (g *scriptedGenerator) Name() string { return "scripted" }

func (g *scriptedGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.response, nil
}

type recordingAvatar struct {
	speed, jump float64
}

func (a *recordingAvatar) SetRunSpeed(s float64)     { a.speed = s }
func (a *recordingAvatar) SetJumpStrength(j float64) { a.jump = j }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func newTestManager(t *testing.T, gen *scriptedGenerator, cfg Config) (*Manager, *recordingAvatar) {
	t.Helper()
	monitor := telemetry.NewCollector()
	an := analyzer.New(analyzer.DefaultThresholds())
	engine := policy.NewEngine(gen, difficulty.DefaultProfile(), policy.Config{}, quietLogger())
	avatar := &recordingAvatar{}
	eff := effector.New(func() []effector.BlockTuner { return nil }, avatar, quietLogger())

	m := New(monitor, an, engine, eff, nil, cfg, quietLogger())
	t.Cleanup(m.Close)
	return m, avatar
}

func TestTriggerGating(t *testing.T) {
	m, _ := newTestManager(t, &scriptedGenerator{response: "{}"}, Config{
		Enabled:        true,
		DeathThreshold: 2,
		Cooldown:       time.Hour,
	})

	if m.HandleDeath() {
		t.Error("first death should not trigger at threshold 2")
	}
	if !m.HandleDeath() {
		t.Error("second death should trigger")
	}
	if m.Deaths() != 2 {
		t.Errorf("deaths = %d, want 2", m.Deaths())
	}

	// Run a cycle; the cooldown then suppresses the next trigger.
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if m.HandleDeath() {
		t.Error("death during cooldown should not trigger")
	}
}

func TestDisabledNeverTriggers(t *testing.T) {
	m, _ := newTestManager(t, &scriptedGenerator{response: "{}"}, Config{
		Enabled:        false,
		DeathThreshold: 1,
	})
	for i := 0; i < 5; i++ {
		if m.HandleDeath() {
			t.Fatal("disabled manager triggered a cycle")
		}
	}
}

func TestRunCycleAppliesAndNotifies(t *testing.T) {
	gen := &scriptedGenerator{response: `{"run_speed": 6.0, "jump_strength": 11.0}`}
	m, avatar := newTestManager(t, gen, Config{Enabled: true, DeathThreshold: 1})

	var notified *difficulty.Profile
	var notifiedSymptom analyzer.Symptom
	m.Subscribe(func(p *difficulty.Profile, s analyzer.Symptom) {
		notified = p
		notifiedSymptom = s
	})

	m.HandleDistance(35)
	m.HandleTick(30)
	for i := 0; i < 5; i++ {
		m.HandleDeath()
		m.HandleDistance(35)
	}

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}

	if avatar.speed != 6.0 || avatar.jump != 11.0 {
		t.Errorf("effector not applied: speed=%g jump=%g", avatar.speed, avatar.jump)
	}
	if notified == nil {
		t.Fatal("observer not notified")
	}
	if notified.Value(difficulty.VarRunSpeed) != 6.0 {
		t.Errorf("observer got run_speed %g", notified.Value(difficulty.VarRunSpeed))
	}
	if notifiedSymptom > analyzer.Low {
		t.Errorf("symptom = %v, want low or worse for a struggling player", notifiedSymptom)
	}
	if m.Adjustments() != 1 {
		t.Errorf("adjustments = %d, want 1", m.Adjustments())
	}
}

// The plan stage may run off the game goroutine, so it must not touch
// game state; all mutation belongs to Commit.
func TestPlanCycleDefersApply(t *testing.T) {
	gen := &scriptedGenerator{response: `{"run_speed": 6.5}`}
	m, avatar := newTestManager(t, gen, Config{Enabled: true, DeathThreshold: 1})

	m.HandleDeath()
	profile, symptom, err := m.PlanCycle(context.Background())
	if err != nil {
		t.Fatalf("PlanCycle: %v", err)
	}
	if avatar.speed != 0 {
		t.Errorf("plan stage touched the avatar: speed=%g", avatar.speed)
	}
	if m.Adjustments() != 0 {
		t.Errorf("adjustments = %d before commit, want 0", m.Adjustments())
	}

	m.Commit(profile, symptom)
	if avatar.speed != 6.5 {
		t.Errorf("commit did not apply: speed=%g", avatar.speed)
	}
	if m.Adjustments() != 1 {
		t.Errorf("adjustments = %d after commit, want 1", m.Adjustments())
	}
}

func TestResetSessionClearsState(t *testing.T) {
	gen := &scriptedGenerator{response: "{}"}
	m, _ := newTestManager(t, gen, Config{Enabled: true, DeathThreshold: 1})

	m.HandleDistance(10)
	m.HandleCoins(3)
	m.HandleDeath()
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}

	m.ResetSession()
	if m.Deaths() != 0 || m.Adjustments() != 0 {
		t.Error("counters survived ResetSession")
	}
}

func TestCloseFlushesSessionLog(t *testing.T) {
	dir := t.TempDir()
	gen := &scriptedGenerator{response: `{"run_speed": 7}`}

	monitor := telemetry.NewCollector()
	an := analyzer.New(analyzer.DefaultThresholds())
	engine := policy.NewEngine(gen, difficulty.DefaultProfile(), policy.Config{}, quietLogger())
	eff := effector.New(func() []effector.BlockTuner { return nil }, nil, quietLogger())
	m := New(monitor, an, engine, eff, nil, Config{
		Enabled:        true,
		DeathThreshold: 1,
		LogDir:         dir,
	}, quietLogger())

	m.HandleDeath()
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	m.Close()
	m.Close() // second close is a no-op

	matches, err := filepath.Glob(filepath.Join(dir, "session_*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one session log file, got %v (err %v)", matches, err)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	var entries []LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("session log is not a JSON array: %v", err)
	}

	events := make(map[string]bool)
	for _, e := range entries {
		events[e.Event] = true
		if e.Timestamp.IsZero() {
			t.Error("entry missing timestamp")
		}
	}
	for _, want := range []string{EventSessionStart, EventCycleStart, EventCycleComplete} {
		if !events[want] {
			t.Errorf("session log missing %s event", want)
		}
	}
}
