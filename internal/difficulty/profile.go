// Package difficulty defines the set of bounded numeric parameters the
// adaptive controller tunes at runtime. A Profile is an ordered collection
// of named variables, each with fixed [min, max] bounds enforced by
// clamping on every mutation.
package difficulty

import (
	"fmt"
	"math"
)

// Variable is one tunable knob with hard bounds.
type Variable struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

// Clamp restricts the variable's value to its [Min, Max] bounds.
func (v *Variable) Clamp() {
	v.Value = math.Max(v.Min, math.Min(v.Max, v.Value))
}

// Profile is an ordered, fixed-size set of difficulty variables.
// The zero value is not useful; build one with NewProfile or DefaultProfile.
type Profile struct {
	vars  []Variable
	index map[string]int
}

// NewProfile builds a profile from the given variables, preserving order.
// Values are clamped on entry. Duplicate names are an error.
func NewProfile(vars []Variable) (*Profile, error) {
	p := &Profile{
		vars:  make([]Variable, len(vars)),
		index: make(map[string]int, len(vars)),
	}
	for i, v := range vars {
		if _, dup := p.index[v.Name]; dup {
			return nil, fmt.Errorf("difficulty: duplicate variable %q", v.Name)
		}
		if v.Min > v.Max {
			return nil, fmt.Errorf("difficulty: variable %q has min %g > max %g", v.Name, v.Min, v.Max)
		}
		v.Clamp()
		p.vars[i] = v
		p.index[v.Name] = i
	}
	return p, nil
}

// Copy returns an independent runtime copy. Mutating the copy never
// affects the original, so a designer-configured template stays pristine.
func (p *Profile) Copy() *Profile {
	cp := &Profile{
		vars:  make([]Variable, len(p.vars)),
		index: make(map[string]int, len(p.index)),
	}
	copy(cp.vars, p.vars)
	for k, v := range p.index {
		cp.index[k] = v
	}
	return cp
}

// Len returns the number of variables.
func (p *Profile) Len() int { return len(p.vars) }

// Variables returns the variables in schema order. The returned slice is
// a copy; use Set to mutate the profile.
func (p *Profile) Variables() []Variable {
	out := make([]Variable, len(p.vars))
	copy(out, p.vars)
	return out
}

// Get returns the variable with the given name.
func (p *Profile) Get(name string) (Variable, bool) {
	i, ok := p.index[name]
	if !ok {
		return Variable{}, false
	}
	return p.vars[i], true
}

// Value returns the current value of a variable, or 0 if unknown.
func (p *Profile) Value(name string) float64 {
	if v, ok := p.Get(name); ok {
		return v.Value
	}
	return 0
}

// Set assigns a new value to a named variable, clamping it to the
// variable's bounds. Returns false if the name is not in the schema.
func (p *Profile) Set(name string, value float64) bool {
	i, ok := p.index[name]
	if !ok {
		return false
	}
	p.vars[i].Value = value
	p.vars[i].Clamp()
	return true
}

// ClampAll re-clamps every variable to its bounds.
func (p *Profile) ClampAll() {
	for i := range p.vars {
		p.vars[i].Clamp()
	}
}

// Equal reports whether two profiles have identical variables, values
// and bounds in the same order.
func (p *Profile) Equal(o *Profile) bool {
	if o == nil || len(p.vars) != len(o.vars) {
		return false
	}
	for i, v := range p.vars {
		if v != o.vars[i] {
			return false
		}
	}
	return true
}
