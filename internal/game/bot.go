package game

import (
	"github.com/vovakirdan/skyrunner/internal/core"
)

// Bot is a scripted player for headless evaluation runs. It jumps when
// a hazard or gap comes within its lookahead window and respawns a few
// ticks after dying. Skill scales the lookahead: a clumsy bot sees
// trouble too late and dies more, which is exactly what exercises the
// adaptation loop.
type Bot struct {
	lookahead    float64
	respawnDelay int
	deadTicks    int
}

// NewBot creates a bot. skill is in [0,1]: 0 reacts almost blindly,
// 1 sees a full jump's distance ahead.
func NewBot(skill float64) *Bot {
	if skill < 0 {
		skill = 0
	}
	if skill > 1 {
		skill = 1
	}
	return &Bot{
		lookahead:    2 + skill*6,
		respawnDelay: 30,
	}
}

// Act produces the input frame for the current tick.
func (b *Bot) Act(r *Runner) core.InputFrame {
	frame := core.NewInputFrame()

	if r.dead {
		b.deadTicks++
		if b.deadTicks >= b.respawnDelay {
			b.deadTicks = 0
			frame.Set(core.ActionRestart)
		}
		return frame
	}
	b.deadTicks = 0

	if r.grounded && b.dangerAhead(r) {
		frame.Set(core.ActionJump)
	}
	return frame
}

// dangerAhead scans the window in front of the avatar for a gap or a
// hazard cell.
func (b *Bot) dangerAhead(r *Runner) bool {
	from := float64(r.playerX + playerWidth)
	to := from + b.lookahead

	for x := from; x <= to; x++ {
		blk := r.terrain.blockAt(x)
		if blk != nil && blk.Kind.gap {
			return true
		}
	}

	for _, blk := range r.terrain.blocks {
		for _, h := range blk.Hazards {
			hx := blk.X + float64(h.Offset)
			if hx >= from && hx <= to {
				return true
			}
		}
	}
	return false
}
