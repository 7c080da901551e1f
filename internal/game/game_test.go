package game

import (
	"testing"

	"github.com/vovakirdan/skyrunner/internal/core"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func jumpFrame() core.InputFrame {
	f := core.NewInputFrame()
	f.Set(core.ActionJump)
	return f
}

func TestRunnerStartsGroundedOnSafeTerrain(t *testing.T) {
	r := New(testConfig(), Events{})

	if !r.grounded {
		t.Error("avatar should start grounded")
	}
	if r.overGap() {
		t.Error("avatar should not start over a gap")
	}

	b := r.terrain.blockAt(float64(r.playerX))
	if b == nil {
		t.Fatal("no terrain under avatar at start")
	}
	if b.Kind.Name() != "plain" {
		t.Errorf("starting block = %q, want plain", b.Kind.Name())
	}
}

func TestJumpLeavesGroundAndLands(t *testing.T) {
	r := New(testConfig(), Events{})

	r.Step(jumpFrame())
	if r.grounded {
		t.Fatal("avatar should be airborne after jump")
	}
	if r.playerY >= 0 {
		t.Errorf("playerY = %v after jump, want above ground", r.playerY)
	}

	// A full jump at default impulse resolves well within 2 seconds.
	empty := core.NewInputFrame()
	for i := 0; i < 120 && !r.grounded && !r.dead; i++ {
		r.Step(empty)
	}
	if !r.dead && !r.grounded {
		t.Error("avatar never landed")
	}
}

func TestTerrainDeterministicForSeed(t *testing.T) {
	a := newTerrain(7)
	b := newTerrain(7)
	a.Reset(7, 80)
	b.Reset(7, 80)

	for i := 0; i < 20; i++ {
		a.spawn()
		b.spawn()
	}

	if len(a.blocks) != len(b.blocks) {
		t.Fatalf("block counts differ: %d vs %d", len(a.blocks), len(b.blocks))
	}
	for i := range a.blocks {
		if a.blocks[i].Kind.Name() != b.blocks[i].Kind.Name() {
			t.Errorf("block %d kind %q vs %q", i, a.blocks[i].Kind.Name(), b.blocks[i].Kind.Name())
		}
		if a.blocks[i].Width != b.blocks[i].Width {
			t.Errorf("block %d width %d vs %d", i, a.blocks[i].Width, b.blocks[i].Width)
		}
	}
}

func TestNoAdjacentGaps(t *testing.T) {
	tr := newTerrain(1)
	for _, k := range tr.kinds {
		if k.gap {
			k.SetWeight(10.0) // Make gaps dominate the draw
		}
	}
	tr.Reset(1, 80)
	for i := 0; i < 200; i++ {
		tr.spawn()
	}

	for i := 1; i < len(tr.blocks); i++ {
		if tr.blocks[i].Kind.gap && tr.blocks[i-1].Kind.gap {
			t.Fatalf("blocks %d and %d are both gaps", i-1, i)
		}
	}
}

func TestWeightZeroKindNeverSpawns(t *testing.T) {
	tr := newTerrain(3)
	for _, k := range tr.kinds {
		if k.HasSaw() {
			k.SetWeight(0)
		}
	}
	tr.Reset(3, 80)
	for i := 0; i < 300; i++ {
		tr.spawn()
	}

	for _, b := range tr.blocks {
		if b.Kind.HasSaw() {
			t.Fatal("saw block spawned with zero weight")
		}
	}
}

func TestTunersExposeCatalog(t *testing.T) {
	r := New(testConfig(), Events{})
	tuners := r.Tuners()
	if len(tuners) != 6 {
		t.Fatalf("len(tuners) = %d, want 6", len(tuners))
	}

	var saw, spike, enemy bool
	for _, b := range tuners {
		saw = saw || b.HasSaw()
		spike = spike || b.HasSpike()
		enemy = enemy || b.HasEnemy()
	}
	if !saw || !spike || !enemy {
		t.Errorf("catalog missing hazard tags: saw=%v spike=%v enemy=%v", saw, spike, enemy)
	}
}

func TestHazardKillsAndEmitsDeath(t *testing.T) {
	var deaths int
	r := New(testConfig(), Events{OnDeath: func() { deaths++ }})

	plain := r.terrain.kinds[0]
	r.terrain.blocks = []*Block{{
		Kind:    plain,
		X:       0,
		Width:   80,
		Hazards: []Hazard{{Offset: r.playerX + 1, Type: HazardSaw, Height: 2}},
	}}

	st := r.Step(core.NewInputFrame())
	if !st.Dead {
		t.Fatal("avatar should die on a saw")
	}
	if deaths != 1 {
		t.Errorf("deaths callback fired %d times, want 1", deaths)
	}
	if st.Deaths != 1 {
		t.Errorf("state deaths = %d, want 1", st.Deaths)
	}
}

func TestGapFallKills(t *testing.T) {
	r := New(testConfig(), Events{})

	var gap *BlockKind
	for _, k := range r.terrain.kinds {
		if k.gap {
			gap = k
		}
	}
	r.terrain.blocks = []*Block{{Kind: gap, X: 0, Width: 60}}

	empty := core.NewInputFrame()
	for i := 0; i < 120 && !r.dead; i++ {
		r.Step(empty)
	}
	if !r.dead {
		t.Error("avatar should die falling into a gap")
	}
}

func TestCoinCollection(t *testing.T) {
	var picked int
	r := New(testConfig(), Events{OnCoin: func(d int) { picked += d }})

	plain := r.terrain.kinds[0]
	r.terrain.blocks = []*Block{{
		Kind:  plain,
		X:     0,
		Width: 80,
		Coins: []Coin{{Offset: r.playerX + 1, Lift: 1}},
	}}

	st := r.Step(core.NewInputFrame())
	if st.Coins != 1 {
		t.Errorf("coins = %d, want 1", st.Coins)
	}
	if picked != 1 {
		t.Errorf("coin callback total = %d, want 1", picked)
	}
}

func TestRestartAfterDeathResetsRun(t *testing.T) {
	var resets int
	r := New(testConfig(), Events{OnRunReset: func() { resets++ }})

	plain := r.terrain.kinds[0]
	r.terrain.blocks = []*Block{{
		Kind:    plain,
		X:       0,
		Width:   80,
		Hazards: []Hazard{{Offset: r.playerX, Type: HazardSpike, Height: 2}},
	}}
	r.Step(core.NewInputFrame())
	if !r.dead {
		t.Fatal("setup: avatar should be dead")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	st := r.Step(restart)

	if st.Dead {
		t.Error("avatar should be alive after restart")
	}
	if st.Distance != 0 {
		t.Errorf("distance = %v after restart, want 0", st.Distance)
	}
	if st.Deaths != 1 {
		t.Errorf("deaths = %d, deaths persist across runs", st.Deaths)
	}
	if resets != 1 {
		t.Errorf("run reset callback fired %d times, want 1", resets)
	}
}

func TestAvatarSettersChangePhysics(t *testing.T) {
	r := New(testConfig(), Events{})
	r.SetRunSpeed(12)
	r.SetJumpStrength(14)

	if r.RunSpeed() != 12 {
		t.Errorf("RunSpeed = %v, want 12", r.RunSpeed())
	}
	if r.JumpStrength() != 14 {
		t.Errorf("JumpStrength = %v, want 14", r.JumpStrength())
	}

	st := r.Step(core.NewInputFrame())
	want := 12.0 / 60.0
	if st.Distance < want-1e-9 || st.Distance > want+1e-9 {
		t.Errorf("distance after one tick = %v, want %v", st.Distance, want)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	r := New(testConfig(), Events{})

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	st := r.Step(pause)
	if !st.Paused {
		t.Fatal("simulation should be paused")
	}

	before := r.distance
	r.Step(core.NewInputFrame())
	if r.distance != before {
		t.Error("distance advanced while paused")
	}

	st = r.Step(pause)
	if st.Paused {
		t.Error("pause should toggle off")
	}
}
