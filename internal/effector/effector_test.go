package effector

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/difficulty"
)

type fakeBlock struct {
	name   string
	saw    bool
	spike  bool
	enemy  bool
	weight float64
}

func (b *fakeBlock) Name() string        { return b.name }
func (b *fakeBlock) HasSaw() bool        { return b.saw }
func (b *fakeBlock) HasSpike() bool      { return b.spike }
func (b *fakeBlock) HasEnemy() bool      { return b.enemy }
func (b *fakeBlock) Weight() float64     { return b.weight }
func (b *fakeBlock) SetWeight(w float64) { b.weight = w }

type fakeAvatar struct {
	speed, jump float64
}

func (a *fakeAvatar) SetRunSpeed(s float64)     { a.speed = s }
func (a *fakeAvatar) SetJumpStrength(j float64) { a.jump = j }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func testBlocks() []*fakeBlock {
	return []*fakeBlock{
		{name: "saw_gauntlet", saw: true, weight: 0.3},
		{name: "spike_pit", spike: true, weight: 0.2},
		{name: "crawler_nest", enemy: true, weight: 0.4},
		{name: "flat_ground", weight: 1.0},
	}
}

func newTestEffector(blocks []*fakeBlock, avatar Avatar) *Effector {
	return New(func() []BlockTuner {
		out := make([]BlockTuner, len(blocks))
		for i, b := range blocks {
			out[i] = b
		}
		return out
	}, avatar, quietLogger())
}

func TestApplyScalesAgainstBaseline(t *testing.T) {
	blocks := testBlocks()
	avatar := &fakeAvatar{}
	e := newTestEffector(blocks, avatar)

	p := difficulty.DefaultProfile()
	p.Set(difficulty.VarSawWeight, 1.0)    // 2x midpoint
	p.Set(difficulty.VarSpikeWeight, 0.25) // 0.5x midpoint
	p.Set(difficulty.VarEnemyDensity, 0.5) // exactly midpoint
	e.Apply(p)

	if got := blocks[0].weight; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("saw weight = %g, want 0.6", got)
	}
	if got := blocks[1].weight; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("spike weight = %g, want 0.1", got)
	}
	if got := blocks[2].weight; math.Abs(got-0.4) > 1e-9 {
		t.Errorf("enemy weight at midpoint = %g, want unchanged 0.4", got)
	}
	if blocks[3].weight != 1.0 {
		t.Errorf("untagged block weight = %g, want untouched", blocks[3].weight)
	}
	if avatar.speed != p.Value(difficulty.VarRunSpeed) {
		t.Errorf("avatar speed = %g", avatar.speed)
	}
	if avatar.jump != p.Value(difficulty.VarJumpStrength) {
		t.Errorf("avatar jump = %g", avatar.jump)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	blocks := testBlocks()
	e := newTestEffector(blocks, &fakeAvatar{})

	p := difficulty.DefaultProfile()
	p.Set(difficulty.VarSawWeight, 0.8)

	e.Apply(p)
	once := blocks[0].weight
	e.Apply(p)
	twice := blocks[0].weight

	if math.Abs(once-twice) > 1e-12 {
		t.Errorf("repeated apply drifted: %g then %g", once, twice)
	}
	// Baseline cache holds the original, not the scaled value.
	if base, ok := e.BaselineWeight("saw_gauntlet"); !ok || base != 0.3 {
		t.Errorf("baseline = %g, %v; want 0.3, true", base, ok)
	}
}

func TestApplyFloorsWeightAtEpsilon(t *testing.T) {
	blocks := []*fakeBlock{{name: "spike_pit", spike: true, weight: 0.02}}
	e := newTestEffector(blocks, &fakeAvatar{})

	p := difficulty.DefaultProfile()
	p.Set(difficulty.VarSpikeWeight, 0.05) // bottom of range
	e.Apply(p)

	if blocks[0].weight < MinWeight {
		t.Errorf("weight %g below floor %g", blocks[0].weight, MinWeight)
	}
	if blocks[0].weight != MinWeight {
		t.Errorf("weight = %g, want floored to %g", blocks[0].weight, MinWeight)
	}
}

func TestSawTagWinsOverOtherTags(t *testing.T) {
	blocks := []*fakeBlock{{name: "everything", saw: true, spike: true, enemy: true, weight: 0.5}}
	e := newTestEffector(blocks, &fakeAvatar{})

	p := difficulty.DefaultProfile()
	p.Set(difficulty.VarSawWeight, 1.0)
	p.Set(difficulty.VarSpikeWeight, 0.05)
	p.Set(difficulty.VarEnemyDensity, 0.05)
	e.Apply(p)

	if math.Abs(blocks[0].weight-1.0) > 1e-9 {
		t.Errorf("weight = %g, want saw scaling (1.0)", blocks[0].weight)
	}
}

func TestApplyWithoutAvatarSkipsMovement(t *testing.T) {
	blocks := testBlocks()
	e := newTestEffector(blocks, nil)

	// Must not panic; block weights still apply.
	p := difficulty.DefaultProfile()
	p.Set(difficulty.VarSawWeight, 1.0)
	e.Apply(p)

	if math.Abs(blocks[0].weight-0.6) > 1e-9 {
		t.Errorf("saw weight = %g, want 0.6 even without avatar", blocks[0].weight)
	}
}
