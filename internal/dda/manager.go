// Package dda wires the monitor, analyzer, policy engine and effector
// into the adaptation cycle and decides when a cycle may run. The
// manager owns all orchestration state: death counter, cooldown clock,
// adjustment counter and the session log.
package dda

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
	"github.com/vovakirdan/skyrunner/internal/effector"
	"github.com/vovakirdan/skyrunner/internal/policy"
	"github.com/vovakirdan/skyrunner/internal/storage"
	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

// Config gates cycle triggering.
type Config struct {
	Enabled        bool
	DeathThreshold int           // deaths before a cycle may trigger, default 2
	Cooldown       time.Duration // minimum time between adjustments, default 5s
	LogDir         string        // session log destination
}

// Observer is notified after a difficulty change has been applied.
type Observer func(p *difficulty.Profile, symptom analyzer.Symptom)

// Manager orchestrates the adaptation loop.
type Manager struct {
	monitor  *telemetry.Collector
	analyzer *analyzer.Analyzer
	engine   *policy.Engine
	effector *effector.Effector
	store    *storage.Store // optional history persistence
	logger   *log.Logger
	cfg      Config

	sessionLog *SessionLog
	sessionID  string
	startedAt  time.Time

	mu          sync.Mutex
	deaths      int
	adjustments int
	lastAdjust  time.Time
	observers   []Observer
	closed      bool
}

// New wires a manager from its collaborators. store may be nil to run
// without history persistence.
func New(monitor *telemetry.Collector, an *analyzer.Analyzer, engine *policy.Engine,
	eff *effector.Effector, store *storage.Store, cfg Config, logger *log.Logger) *Manager {

	if cfg.DeathThreshold <= 0 {
		cfg.DeathThreshold = 2
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Second
	}

	m := &Manager{
		monitor:    monitor,
		analyzer:   an,
		engine:     engine,
		effector:   eff,
		store:      store,
		logger:     logger,
		cfg:        cfg,
		sessionLog: NewSessionLog(),
		sessionID:  uuid.NewString(),
		startedAt:  time.Now(),
	}
	m.sessionLog.Append(EventSessionStart, map[string]any{"session_id": m.sessionID})

	if m.store != nil {
		if err := m.store.BeginSession(m.sessionID, m.startedAt); err != nil {
			m.logger.Warn("could not persist session start", "error", err)
		}
	}
	return m
}

// SessionID identifies this manager's session in logs and history.
func (m *Manager) SessionID() string { return m.sessionID }

// Subscribe registers an observer for difficulty-changed notifications.
func (m *Manager) Subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Deaths returns the current death counter.
func (m *Manager) Deaths() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deaths
}

// Adjustments returns how many cycles have committed a change.
func (m *Manager) Adjustments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustments
}

// HandleDistance forwards a distance notification to the monitor.
func (m *Manager) HandleDistance(x float64) {
	m.monitor.RecordDistance(x)
}

// HandleCoins forwards a coin-count delta to the monitor.
func (m *Manager) HandleCoins(delta int) {
	m.monitor.RecordCoinDelta(delta)
}

// HandleJump forwards a jump to the monitor.
func (m *Manager) HandleJump() {
	m.monitor.RecordJump()
}

// HandleTick advances the monitor's run clock.
func (m *Manager) HandleTick(dt float64) {
	m.monitor.Tick(dt)
}

// HandleRunReset forwards a run-reset signal to the monitor.
func (m *Manager) HandleRunReset() {
	m.monitor.ResetRun()
}

// HandleDeath records a death and reports whether the trigger condition
// now holds. The death always counts; whether it starts a cycle is up to
// the threshold and cooldown.
func (m *Manager) HandleDeath() bool {
	m.monitor.RecordDeath()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deaths++
	return m.shouldTriggerLocked()
}

// ShouldTrigger reports whether a cycle would run right now.
func (m *Manager) ShouldTrigger() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shouldTriggerLocked()
}

func (m *Manager) shouldTriggerLocked() bool {
	if !m.cfg.Enabled {
		return false
	}
	if m.deaths < m.cfg.DeathThreshold {
		return false
	}
	return time.Since(m.lastAdjust) >= m.cfg.Cooldown
}

// PlanCycle runs the monitor, analyze and plan stages and returns the
// profile to apply. It blocks for up to the provider timeout but mutates
// no game state, so it is safe to run off the goroutine that owns the
// game loop; hand the result to Commit on that goroutine. A concurrent
// second plan is prevented by the engine's own in-flight guard.
// An error is returned only for the fatal missing-profile configuration
// case; provider trouble resolves to "no change" inside the engine.
func (m *Manager) PlanCycle(ctx context.Context) (*difficulty.Profile, analyzer.Symptom, error) {
	snap := m.monitor.Snapshot()
	symptom := m.analyzer.Classify(snap)

	m.sessionLog.Append(EventCycleStart, map[string]any{
		"symptom":  symptom.String(),
		"deaths":   snap.Deaths,
		"distance": snap.Distance,
	})
	m.logger.Info("adaptation cycle started", "symptom", symptom.String(), "deaths", snap.Deaths)

	profile, err := m.engine.RequestAdjustment(ctx, snap, symptom)
	if err != nil {
		m.sessionLog.Append(EventCycleFailed, map[string]any{"error": err.Error()})
		m.logger.Error("adaptation cycle failed", "error", err)
		return nil, symptom, err
	}
	return profile, symptom, nil
}

// Commit pushes a planned profile into the game through the effector and
// records the adjustment. It writes live game state, so it must run on
// the goroutine that owns the game loop, between runs.
func (m *Manager) Commit(profile *difficulty.Profile, symptom analyzer.Symptom) {
	m.effector.Apply(profile)

	m.mu.Lock()
	m.adjustments++
	m.lastAdjust = time.Now()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	m.sessionLog.Append(EventCycleComplete, map[string]any{
		"symptom": symptom.String(),
		"profile": profile.EncodeValues(),
	})

	if m.store != nil {
		if _, err := m.store.SaveAdjustment(m.sessionID, symptom.String(), profile.EncodeValues()); err != nil {
			m.logger.Warn("could not persist adjustment", "error", err)
		}
	}

	for _, o := range observers {
		o(profile, symptom)
	}
}

// RunCycle executes one Monitor -> Analyze -> Plan -> Execute pass on
// the calling goroutine. Callers that run the game loop concurrently
// should split it themselves: PlanCycle off the loop, Commit on it.
func (m *Manager) RunCycle(ctx context.Context) error {
	profile, symptom, err := m.PlanCycle(ctx)
	if err != nil {
		return err
	}
	m.Commit(profile, symptom)
	return nil
}

// ResetSession clears all counters, the monitor's metrics and the
// engine's example buffer, starting a fresh evaluation session without
// restarting the process.
func (m *Manager) ResetSession() {
	m.monitor.ResetAll()
	m.engine.ResetExamples()

	m.mu.Lock()
	m.deaths = 0
	m.adjustments = 0
	m.lastAdjust = time.Time{}
	m.mu.Unlock()

	m.sessionLog.Append(EventSessionReset, nil)
	m.logger.Info("session reset")
}

// Close flushes the session log and closes out the persisted session.
// Both are best-effort: I/O failure logs a warning and is not returned.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	deaths := m.deaths
	adjustments := m.adjustments
	m.mu.Unlock()

	if m.sessionLog.Len() > 0 && m.cfg.LogDir != "" {
		if path, err := m.sessionLog.Flush(m.cfg.LogDir, m.sessionID); err != nil {
			m.logger.Warn("could not flush session log", "error", err)
		} else if path != "" {
			m.logger.Info("session log written", "path", path)
		}
	}

	if m.store != nil {
		if err := m.store.EndSession(m.sessionID, time.Now(), deaths, adjustments); err != nil {
			m.logger.Warn("could not persist session end", "error", err)
		}
	}
}
