// Package game implements the Skyrunner endless platformer: an
// auto-running avatar crossing block-based terrain with gaps, saws,
// spikes, crawlers and coins. Difficulty knobs (block weights, run
// speed, jump strength) are mutable at run time.
package game

import (
	"fmt"

	"github.com/vovakirdan/skyrunner/internal/core"
	"github.com/vovakirdan/skyrunner/internal/effector"
)

// Visual characters for rendering
const (
	PlayerHead  = '◆'
	PlayerBody  = '█'
	PlayerLeg1  = '╱'
	PlayerLeg2  = '╲'
	GroundChar  = '═'
	SawChar     = '✶'
	SpikeChar   = '▲'
	CrawlerChar = 'ω'
	CoinChar    = '●'
)

// Physics constants, in cells and seconds.
const (
	gravity      = 24.0
	maxFallSpeed = 30.0
	playerWidth  = 2
	playerHeight = 2
	fallDeathY   = 3.0 // Cells below ground level before a gap fall kills
)

// Defaults matching the reference difficulty profile.
const (
	DefaultRunSpeed     = 8.0
	DefaultJumpStrength = 10.0
)

// Events carries the runner's outbound callbacks. All fields are
// optional; nil callbacks are skipped.
type Events struct {
	OnDistance func(x float64)
	OnDeath    func()
	OnCoin     func(delta int)
	OnJump     func()
	OnTick     func(dt float64)
	OnRunReset func()
}

// Runner is the platformer simulation. It advances in fixed ticks and
// reports everything that happens through Events.
type Runner struct {
	runtime core.RuntimeConfig
	terrain *terrain
	events  Events

	groundY int
	playerX int

	playerY   float64 // Relative to ground; negative = above, positive = falling in a gap
	playerVel float64
	grounded  bool

	runSpeed     float64
	jumpStrength float64

	distance  float64
	coins     int
	deaths    int
	dead      bool
	paused    bool
	quit      bool
	tickCount int
	legFrame  int
	runSeq    int64 // Bumped per respawn so each run gets fresh terrain
}

// New creates a runner and lays out the first run's terrain.
func New(runtime core.RuntimeConfig, events Events) *Runner {
	r := &Runner{
		runtime:      runtime,
		terrain:      newTerrain(runtime.Seed),
		events:       events,
		groundY:      runtime.ScreenH - 3,
		playerX:      6,
		runSpeed:     DefaultRunSpeed,
		jumpStrength: DefaultJumpStrength,
	}
	r.startRun()
	return r
}

// SetRunSpeed adjusts the horizontal scroll speed, in cells per second.
func (r *Runner) SetRunSpeed(speed float64) { r.runSpeed = speed }

// SetJumpStrength adjusts the jump impulse, in cells per second.
func (r *Runner) SetJumpStrength(strength float64) { r.jumpStrength = strength }

// Tuners exposes the terrain block catalog for weight adjustment.
func (r *Runner) Tuners() []effector.BlockTuner { return r.terrain.Tuners() }

// RunSpeed returns the current scroll speed.
func (r *Runner) RunSpeed() float64 { return r.runSpeed }

// JumpStrength returns the current jump impulse.
func (r *Runner) JumpStrength() float64 { return r.jumpStrength }

// startRun resets per-run state and regenerates terrain for a fresh run.
func (r *Runner) startRun() {
	r.terrain.Reset(r.runtime.Seed+r.runSeq, r.runtime.ScreenW)
	r.runSeq++
	r.playerY = 0
	r.playerVel = 0
	r.grounded = true
	r.distance = 0
	r.dead = false
}

// ResetSession zeroes session counters and starts a fresh run. The
// adaptation side of a session reset is the manager's business; this
// only resets what the runner owns.
func (r *Runner) ResetSession() {
	r.coins = 0
	r.deaths = 0
	r.startRun()
}

// Resize updates the screen dimensions.
func (r *Runner) Resize(w, h int) {
	r.runtime.ScreenW = w
	r.runtime.ScreenH = h
	r.groundY = h - 3
}

// Step advances the simulation by one tick.
func (r *Runner) Step(in core.InputFrame) core.GameState {
	if in.Has(core.ActionQuit) {
		r.quit = true
	}
	if r.quit {
		return r.State()
	}

	if r.dead {
		if in.Has(core.ActionRestart) {
			r.startRun()
			r.emitRunReset()
		}
		return r.State()
	}

	if in.Has(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.paused {
		return r.State()
	}

	dt := 1.0 / float64(r.runtime.TickRate)
	r.tickCount++
	r.legFrame = (r.legFrame + 1) % 10
	r.emitTick(dt)

	if in.Has(core.ActionJump) && r.grounded {
		r.playerVel = -r.jumpStrength
		r.grounded = false
		r.emitJump()
	}

	// Scroll the world under the avatar.
	dx := r.runSpeed * dt
	r.terrain.Scroll(dx, r.runtime.ScreenW)
	r.distance += dx
	r.emitDistance(r.distance)

	overGap := r.overGap()

	// Ground drops away under a gap.
	if r.grounded && overGap {
		r.grounded = false
	}

	if !r.grounded {
		r.playerVel += gravity * dt
		if r.playerVel > maxFallSpeed {
			r.playerVel = maxFallSpeed
		}
		r.playerY += r.playerVel * dt

		if r.playerY >= 0 && !overGap {
			r.playerY = 0
			r.playerVel = 0
			r.grounded = true
		}
	}

	if r.playerY >= fallDeathY {
		r.kill()
		return r.State()
	}

	r.collectCoins()

	if r.hitHazard() {
		r.kill()
	}

	return r.State()
}

// kill marks the avatar dead and reports the death.
func (r *Runner) kill() {
	if r.dead {
		return
	}
	r.dead = true
	r.deaths++
	r.emitDeath()
}

// overGap reports whether the avatar's foot column is above a gap block.
func (r *Runner) overGap() bool {
	// Probe under the avatar's center of mass.
	b := r.terrain.blockAt(float64(r.playerX) + float64(playerWidth)/2)
	return b != nil && b.Kind.gap
}

// playerRect returns the avatar's collision box in screen coordinates.
func (r *Runner) playerRect() core.Rect {
	screenY := r.groundY - playerHeight - int(-r.playerY)
	return core.NewRect(r.playerX, screenY, playerWidth, playerHeight)
}

// hitHazard tests the avatar against every hazard currently on screen.
func (r *Runner) hitHazard() bool {
	pr := r.playerRect()
	for _, b := range r.terrain.blocks {
		for _, h := range b.Hazards {
			hx := int(b.X) + h.Offset
			hr := core.NewRect(hx, r.groundY-h.Height, 1, h.Height)
			if pr.Intersects(hr) {
				return true
			}
		}
	}
	return false
}

// collectCoins picks up any coin overlapping the avatar.
func (r *Runner) collectCoins() {
	pr := r.playerRect()
	for _, b := range r.terrain.blocks {
		for i := range b.Coins {
			c := &b.Coins[i]
			if c.Collected {
				continue
			}
			cx := int(b.X) + c.Offset
			cr := core.NewRect(cx, r.groundY-c.Lift-1, 1, 1)
			if pr.Intersects(cr) {
				c.Collected = true
				r.coins++
				r.emitCoin(1)
			}
		}
	}
}

// State returns the current simulation state.
func (r *Runner) State() core.GameState {
	return core.GameState{
		Distance: r.distance,
		Coins:    r.coins,
		Deaths:   r.deaths,
		Dead:     r.dead,
		Paused:   r.paused,
		Quit:     r.quit,
	}
}

// Render draws the world to the screen buffer.
func (r *Runner) Render(dst *core.Screen) {
	dst.Clear()

	// Ground, with gaps left open.
	for x := 0; x < dst.Width(); x++ {
		b := r.terrain.blockAt(float64(x))
		if b == nil || !b.Kind.gap {
			dst.Set(x, r.groundY, GroundChar)
		}
	}

	for _, b := range r.terrain.blocks {
		r.drawBlock(dst, b)
	}

	r.drawPlayer(dst)

	hud := fmt.Sprintf(" Dist: %d  Coins: %d  Deaths: %d ", int(r.distance), r.coins, r.deaths)
	dst.DrawText(2, 0, hud)

	if r.paused {
		r.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if r.dead {
		r.drawCenteredMessage(dst, "YOU DIED", fmt.Sprintf("Dist: %d  |  Press R to respawn", int(r.distance)))
	}
}

// drawBlock renders one block's hazards and coins.
func (r *Runner) drawBlock(dst *core.Screen, b *Block) {
	for _, h := range b.Hazards {
		hx := int(b.X) + h.Offset
		var glyph rune
		switch h.Type {
		case HazardSaw:
			glyph = SawChar
		case HazardSpike:
			glyph = SpikeChar
		case HazardCrawler:
			glyph = CrawlerChar
		default:
			continue
		}
		for dy := 1; dy <= h.Height; dy++ {
			dst.Set(hx, r.groundY-dy, glyph)
		}
	}
	for _, c := range b.Coins {
		if c.Collected {
			continue
		}
		dst.Set(int(b.X)+c.Offset, r.groundY-c.Lift-1, CoinChar)
	}
}

// drawPlayer renders the avatar sprite.
func (r *Runner) drawPlayer(dst *core.Screen) {
	baseY := r.groundY - playerHeight - int(-r.playerY)
	x := r.playerX

	dst.Set(x, baseY, PlayerHead)
	dst.Set(x+1, baseY, PlayerBody)

	if r.grounded {
		if r.legFrame < 5 {
			dst.Set(x, baseY+1, PlayerLeg1)
			dst.Set(x+1, baseY+1, PlayerLeg2)
		} else {
			dst.Set(x, baseY+1, PlayerLeg2)
			dst.Set(x+1, baseY+1, PlayerLeg1)
		}
	} else {
		dst.Set(x, baseY+1, PlayerLeg1)
		dst.Set(x+1, baseY+1, PlayerLeg1)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (r *Runner) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func (r *Runner) emitDistance(x float64) {
	if r.events.OnDistance != nil {
		r.events.OnDistance(x)
	}
}

func (r *Runner) emitDeath() {
	if r.events.OnDeath != nil {
		r.events.OnDeath()
	}
}

func (r *Runner) emitCoin(delta int) {
	if r.events.OnCoin != nil {
		r.events.OnCoin(delta)
	}
}

func (r *Runner) emitJump() {
	if r.events.OnJump != nil {
		r.events.OnJump()
	}
}

func (r *Runner) emitTick(dt float64) {
	if r.events.OnTick != nil {
		r.events.OnTick(dt)
	}
}

func (r *Runner) emitRunReset() {
	if r.events.OnRunReset != nil {
		r.events.OnRunReset()
	}
}
