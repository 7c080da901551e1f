// Package telemetry accumulates raw player performance data from game
// event notifications. The collector is the Monitor stage of the
// adaptation loop: it only counts, it never interprets.
package telemetry

import "sync"

// Snapshot is an immutable view of the collected metrics.
type Snapshot struct {
	Distance           float64 // distance traveled this run, in world units
	Deaths             int     // cumulative deaths this session
	TotalRunTime       float64 // seconds of active play this run
	AvgTimeBetweenDied float64 // mean seconds between deaths this session
	CoinsCollected     int     // cumulative coins this session
	Jumps              int     // jumps this run
}

// JumpsPerSecond returns the jump rate for the run, defined as 0 when no
// run time has accumulated.
func (s Snapshot) JumpsPerSecond() float64 {
	if s.TotalRunTime <= 0 {
		return 0
	}
	return float64(s.Jumps) / s.TotalRunTime
}

// Collector gathers per-run and per-session counters. Distance, run time
// and jumps reset each run; deaths and coins persist until ResetAll.
// Safe for concurrent use: game ticks and the adaptation cycle may read
// and write from different goroutines.
type Collector struct {
	mu sync.Mutex

	distance     float64
	deaths       int
	totalRunTime float64
	coins        int
	jumps        int

	runActive          bool
	timeSinceLastDeath float64
	deathGapSum        float64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordDistance notes the player's current distance. Distance starting
// to increase after a reset marks the run active again.
func (c *Collector) RecordDistance(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if x > c.distance {
		c.runActive = true
	}
	c.distance = x
}

// RecordDeath increments the cumulative death count and folds the time
// since the previous death into the inter-death average. The first death
// of a run measures from run start. The run goes inactive until distance
// moves again.
func (c *Collector) RecordDeath() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deaths++
	c.deathGapSum += c.timeSinceLastDeath
	c.timeSinceLastDeath = 0
	c.runActive = false
}

// RecordCoinDelta adds to the session coin total.
func (c *Collector) RecordCoinDelta(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coins += n
}

// RecordJump counts one jump for the current run.
func (c *Collector) RecordJump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jumps++
}

// Tick advances run time by dt seconds. Time only accumulates while a
// run is active.
func (c *Collector) Tick(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.runActive || dt <= 0 {
		return
	}
	c.totalRunTime += dt
	c.timeSinceLastDeath += dt
}

// ResetRun clears per-run counters (distance, run time, jumps) while
// keeping session-cumulative deaths and coins.
func (c *Collector) ResetRun() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = 0
	c.totalRunTime = 0
	c.jumps = 0
	c.timeSinceLastDeath = 0
	c.runActive = false
}

// ResetAll clears every counter, starting a fresh session.
func (c *Collector) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = 0
	c.deaths = 0
	c.totalRunTime = 0
	c.coins = 0
	c.jumps = 0
	c.runActive = false
	c.timeSinceLastDeath = 0
	c.deathGapSum = 0
}

// Snapshot returns a consistent copy of the current metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	avg := 0.0
	if c.deaths > 0 {
		avg = c.deathGapSum / float64(c.deaths)
	}
	return Snapshot{
		Distance:           c.distance,
		Deaths:             c.deaths,
		TotalRunTime:       c.totalRunTime,
		AvgTimeBetweenDied: avg,
		CoinsCollected:     c.coins,
		Jumps:              c.jumps,
	}
}
