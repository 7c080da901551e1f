package difficulty

// Variable names used across the controller, the effector and the game.
const (
	VarEnemyDensity   = "enemy_density"
	VarGapFrequency   = "gap_frequency"
	VarRunSpeed       = "run_speed"
	VarJumpStrength   = "jump_strength"
	VarSawWeight      = "saw_weight"
	VarSpikeWeight    = "spike_weight"
	VarCoinDensity    = "coin_density"
	VarPlatformHeight = "platform_height_variance"
)

// WeightMidpoint is the reference value a weight-like variable has when
// terrain selection probabilities should match their designed baseline.
// The effector scales baselines by value/WeightMidpoint, so a profile at
// the midpoint reproduces the original weights exactly.
const WeightMidpoint = 0.5

// Bound overrides a single variable's schema range.
type Bound struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DefaultProfile returns the reference schema: eight variables with their
// designed bounds and default values. This is the template instance;
// callers take Copy() for runtime work.
func DefaultProfile() *Profile {
	p, err := NewProfile([]Variable{
		{Name: VarEnemyDensity, Value: 0.5, Min: 0.05, Max: 1.0},
		{Name: VarGapFrequency, Value: 0.5, Min: 0.05, Max: 1.0},
		{Name: VarRunSpeed, Value: 8.0, Min: 4.0, Max: 14.0},
		{Name: VarJumpStrength, Value: 10.0, Min: 6.0, Max: 14.0},
		{Name: VarSawWeight, Value: 0.5, Min: 0.05, Max: 1.0},
		{Name: VarSpikeWeight, Value: 0.5, Min: 0.05, Max: 1.0},
		{Name: VarCoinDensity, Value: 0.5, Min: 0.05, Max: 1.0},
		{Name: VarPlatformHeight, Value: 1.5, Min: 0.0, Max: 3.0},
	})
	if err != nil {
		panic(err) // schema is static, an error here is a programming bug
	}
	return p
}

// ProfileWithBounds returns the default schema with per-variable bound
// overrides applied. Unknown override names are ignored; current values
// are re-clamped into the overridden ranges.
func ProfileWithBounds(overrides map[string]Bound) *Profile {
	p := DefaultProfile()
	for name, b := range overrides {
		i, ok := p.index[name]
		if !ok || b.Min > b.Max {
			continue
		}
		p.vars[i].Min = b.Min
		p.vars[i].Max = b.Max
		p.vars[i].Clamp()
	}
	return p
}
