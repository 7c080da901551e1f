// Package effector applies a validated difficulty profile to live game
// state. It is the Execute stage: the only component that mutates
// anything outside the controller.
package effector

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/difficulty"
)

// MinWeight is the floor for any scaled selection weight. A category is
// never driven to exactly zero so it always remains selectable.
const MinWeight = 0.01

// BlockTuner is a terrain block kind whose spawn weight can be tuned.
// Hazard tags decide which profile variable scales the block: saw beats
// spike beats enemy; a block matching none is left untouched.
type BlockTuner interface {
	Name() string
	HasSaw() bool
	HasSpike() bool
	HasEnemy() bool
	Weight() float64
	SetWeight(w float64)
}

// Avatar is the player character's mutation contract.
type Avatar interface {
	SetRunSpeed(speed float64)
	SetJumpStrength(strength float64)
}

// Effector scales block weights and player movement from profile values.
// Baseline weights are cached on first apply and never refreshed, so
// repeated relative scaling always starts from the designed values
// instead of compounding on the previous cycle's result.
type Effector struct {
	blocks   func() []BlockTuner
	avatar   Avatar
	logger   *log.Logger
	baseline map[string]float64
}

// New creates an effector. blocks is called on every apply so the block
// set may be rebuilt between runs; avatar may be nil, in which case
// movement variables are skipped and logged.
func New(blocks func() []BlockTuner, avatar Avatar, logger *log.Logger) *Effector {
	return &Effector{
		blocks:   blocks,
		avatar:   avatar,
		logger:   logger,
		baseline: make(map[string]float64),
	}
}

// Apply pushes the profile's values into the game. Synchronous; invoked
// between runs, never mid-run.
func (e *Effector) Apply(p *difficulty.Profile) {
	if p == nil {
		e.logger.Warn("apply called with no profile, skipping")
		return
	}

	for _, b := range e.blocks() {
		base, cached := e.baseline[b.Name()]
		if !cached {
			base = b.Weight()
			e.baseline[b.Name()] = base
		}

		var value float64
		switch {
		case b.HasSaw():
			value = p.Value(difficulty.VarSawWeight)
		case b.HasSpike():
			value = p.Value(difficulty.VarSpikeWeight)
		case b.HasEnemy():
			value = p.Value(difficulty.VarEnemyDensity)
		default:
			continue
		}

		// A value at the schema midpoint reproduces the baseline exactly.
		w := base * (value / difficulty.WeightMidpoint)
		if w < MinWeight {
			w = MinWeight
		}
		b.SetWeight(w)
	}

	if e.avatar == nil {
		e.logger.Warn("no avatar attached, skipping run speed and jump strength")
		return
	}
	e.avatar.SetRunSpeed(p.Value(difficulty.VarRunSpeed))
	e.avatar.SetJumpStrength(p.Value(difficulty.VarJumpStrength))
}

// BaselineWeight returns the cached pre-adjustment weight for a block,
// if one has been captured.
func (e *Effector) BaselineWeight(name string) (float64, bool) {
	w, ok := e.baseline[name]
	return w, ok
}
