package game

import (
	"math/rand"

	"github.com/vovakirdan/skyrunner/internal/effector"
)

// HazardType identifies what kind of hazard a cell holds.
type HazardType int

const (
	HazardNone HazardType = iota
	HazardSaw
	HazardSpike
	HazardCrawler
)

// BlockKind is a terrain block template with a tunable selection weight.
// The generator picks the next block by weighted random choice, so raising
// a kind's weight makes that terrain more frequent.
type BlockKind struct {
	name     string
	weight   float64
	minW     int
	maxW     int
	gap      bool
	hazard   HazardType
	coinRich bool
}

// Name returns the kind's identifier.
func (k *BlockKind) Name() string { return k.name }

// HasSaw reports whether this kind spawns saw hazards.
func (k *BlockKind) HasSaw() bool { return k.hazard == HazardSaw }

// HasSpike reports whether this kind spawns spike hazards.
func (k *BlockKind) HasSpike() bool { return k.hazard == HazardSpike }

// HasEnemy reports whether this kind spawns crawler enemies.
func (k *BlockKind) HasEnemy() bool { return k.hazard == HazardCrawler }

// Weight returns the current selection weight.
func (k *BlockKind) Weight() float64 { return k.weight }

// SetWeight replaces the selection weight.
func (k *BlockKind) SetWeight(w float64) { k.weight = w }

// defaultKinds returns the terrain catalog with designed baseline weights.
func defaultKinds() []*BlockKind {
	return []*BlockKind{
		{name: "plain", weight: 0.40, minW: 8, maxW: 16},
		{name: "gap", weight: 0.12, minW: 3, maxW: 5, gap: true},
		{name: "saw", weight: 0.12, minW: 7, maxW: 12, hazard: HazardSaw},
		{name: "spike", weight: 0.12, minW: 7, maxW: 12, hazard: HazardSpike},
		{name: "crawler", weight: 0.12, minW: 8, maxW: 14, hazard: HazardCrawler},
		{name: "coins", weight: 0.12, minW: 6, maxW: 10, coinRich: true},
	}
}

// Hazard is a single obstacle cell placed inside a block.
type Hazard struct {
	Offset int // Column offset from the block's left edge
	Type   HazardType
	Height int // Height in cells above the ground
}

// Coin is a collectible placed inside a block.
type Coin struct {
	Offset    int // Column offset from the block's left edge
	Lift      int // Cells above the ground
	Collected bool
}

// Block is a spawned terrain segment. X is the screen position of its left
// edge; blocks scroll left as the avatar runs.
type Block struct {
	Kind    *BlockKind
	X       float64
	Width   int
	Hazards []Hazard
	Coins   []Coin
}

// Right returns the screen position of the block's right edge.
func (b *Block) Right() float64 {
	return b.X + float64(b.Width)
}

// terrain manages the scrolling sequence of contiguous blocks.
type terrain struct {
	kinds  []*BlockKind
	blocks []*Block
	rng    *rand.Rand
}

func newTerrain(seed int64) *terrain {
	return &terrain{
		kinds: defaultKinds(),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Tuners exposes the block catalog for weight adjustment.
func (t *terrain) Tuners() []effector.BlockTuner {
	out := make([]effector.BlockTuner, len(t.kinds))
	for i, k := range t.kinds {
		out[i] = k
	}
	return out
}

// Reset clears spawned blocks and reseeds the generator, then lays a safe
// plain strip so a fresh run never starts on a hazard.
func (t *terrain) Reset(seed int64, screenW int) {
	t.blocks = t.blocks[:0]
	t.rng = rand.New(rand.NewSource(seed))

	safe := &Block{Kind: t.kinds[0], X: 0, Width: screenW / 2}
	t.blocks = append(t.blocks, safe)
	t.fill(screenW)
}

// Scroll moves all blocks left by dx, drops blocks past the left edge and
// spawns new ones so terrain always covers the screen plus a margin.
func (t *terrain) Scroll(dx float64, screenW int) {
	for _, b := range t.blocks {
		b.X -= dx
	}

	kept := t.blocks[:0]
	for _, b := range t.blocks {
		if b.Right() > 0 {
			kept = append(kept, b)
		}
	}
	t.blocks = kept

	t.fill(screenW)
}

// fill spawns blocks until terrain extends one screen past the right edge.
func (t *terrain) fill(screenW int) {
	for t.rightEdge() < float64(screenW*2) {
		t.spawn()
	}
}

func (t *terrain) rightEdge() float64 {
	if len(t.blocks) == 0 {
		return 0
	}
	return t.blocks[len(t.blocks)-1].Right()
}

// spawn appends one block chosen by weighted random selection. Two gaps
// are never adjacent: a jump must always have ground to land on.
func (t *terrain) spawn() {
	prevGap := len(t.blocks) > 0 && t.blocks[len(t.blocks)-1].Kind.gap

	kind := t.pickKind(prevGap)
	width := kind.minW
	if kind.maxW > kind.minW {
		width = kind.minW + t.rng.Intn(kind.maxW-kind.minW+1)
	}

	b := &Block{
		Kind:  kind,
		X:     t.rightEdge(),
		Width: width,
	}

	switch {
	case kind.hazard == HazardSaw:
		b.Hazards = append(b.Hazards, Hazard{Offset: t.innerOffset(width), Type: HazardSaw, Height: 2})
	case kind.hazard == HazardSpike:
		b.Hazards = append(b.Hazards, Hazard{Offset: t.innerOffset(width), Type: HazardSpike, Height: 1})
	case kind.hazard == HazardCrawler:
		b.Hazards = append(b.Hazards, Hazard{Offset: t.innerOffset(width), Type: HazardCrawler, Height: 1})
	case kind.coinRich:
		for off := 1; off < width-1; off += 2 {
			b.Coins = append(b.Coins, Coin{Offset: off, Lift: 1})
		}
	}

	t.blocks = append(t.blocks, b)
}

// innerOffset picks a hazard column away from the block edges so there is
// always room to land before and after.
func (t *terrain) innerOffset(width int) int {
	lo, hi := 2, width-3
	if hi < lo {
		return width / 2
	}
	return lo + t.rng.Intn(hi-lo+1)
}

// pickKind selects a block kind by weight. When the previous block was a
// gap, gap kinds are excluded from the draw.
func (t *terrain) pickKind(excludeGap bool) *BlockKind {
	total := 0.0
	for _, k := range t.kinds {
		if excludeGap && k.gap {
			continue
		}
		total += k.weight
	}
	if total <= 0 {
		return t.kinds[0]
	}

	r := t.rng.Float64() * total
	for _, k := range t.kinds {
		if excludeGap && k.gap {
			continue
		}
		if r < k.weight {
			return k
		}
		r -= k.weight
	}
	return t.kinds[0]
}

// blockAt returns the block covering screen column x, or nil.
func (t *terrain) blockAt(x float64) *Block {
	for _, b := range t.blocks {
		if x >= b.X && x < b.Right() {
			return b
		}
	}
	return nil
}
