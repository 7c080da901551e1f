package difficulty

import (
	"strings"
	"testing"
)

func TestClampOnEveryMutation(t *testing.T) {
	p := DefaultProfile()

	p.Set(VarRunSpeed, 99)
	if got := p.Value(VarRunSpeed); got != 14.0 {
		t.Errorf("run_speed clamped to %g, want 14", got)
	}

	p.Set(VarEnemyDensity, -3)
	if got := p.Value(VarEnemyDensity); got != 0.05 {
		t.Errorf("enemy_density clamped to %g, want 0.05", got)
	}

	for _, v := range p.Variables() {
		if v.Value < v.Min || v.Value > v.Max {
			t.Errorf("%s: value %g outside [%g, %g]", v.Name, v.Value, v.Min, v.Max)
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	template := DefaultProfile()
	cp := template.Copy()

	cp.Set(VarJumpStrength, 13)
	if template.Value(VarJumpStrength) != 10.0 {
		t.Error("mutating a copy leaked into the template")
	}
	if cp.Value(VarJumpStrength) != 13.0 {
		t.Errorf("copy value = %g, want 13", cp.Value(VarJumpStrength))
	}
}

func TestEncodeApplyRoundTrip(t *testing.T) {
	atMin := DefaultProfile()
	atMax := DefaultProfile()
	for _, v := range atMin.Variables() {
		atMin.Set(v.Name, v.Min)
		atMax.Set(v.Name, v.Max)
	}

	cases := map[string]*Profile{
		"defaults": DefaultProfile(),
		"minimum":  atMin,
		"maximum":  atMax,
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			dst := DefaultProfile()
			res, err := dst.ApplyValues(p.EncodeValues())
			if err != nil {
				t.Fatalf("ApplyValues: %v", err)
			}
			if len(res.Applied) != p.Len() {
				t.Errorf("applied %d variables, want %d", len(res.Applied), p.Len())
			}
			if !dst.Equal(p) {
				t.Errorf("round trip mismatch:\n got %s\nwant %s", dst.EncodeValues(), p.EncodeValues())
			}
		})
	}
}

func TestApplyValuesBestEffort(t *testing.T) {
	p := DefaultProfile()
	doc := `{"run_speed": 12, "mystery_knob": 1, "jump_strength": "11.5", "saw_weight": true}`

	res, err := p.ApplyValues(doc)
	if err != nil {
		t.Fatalf("ApplyValues: %v", err)
	}
	if p.Value(VarRunSpeed) != 12 {
		t.Errorf("run_speed = %g, want 12", p.Value(VarRunSpeed))
	}
	if p.Value(VarJumpStrength) != 11.5 {
		t.Errorf("jump_strength = %g, want 11.5 (quoted number tolerated)", p.Value(VarJumpStrength))
	}
	if len(res.Unknown) != 1 || res.Unknown[0] != "mystery_knob" {
		t.Errorf("unknown = %v, want [mystery_knob]", res.Unknown)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "saw_weight" {
		t.Errorf("skipped = %v, want [saw_weight]", res.Skipped)
	}
	if p.Value(VarSawWeight) != 0.5 {
		t.Errorf("saw_weight changed to %g despite bad value", p.Value(VarSawWeight))
	}
}

func TestApplyValuesRejectsNonObject(t *testing.T) {
	p := DefaultProfile()
	before := p.EncodeValues()

	if _, err := p.ApplyValues("here is your json, enjoy"); err == nil {
		t.Fatal("expected error for non-JSON input")
	}
	if p.EncodeValues() != before {
		t.Error("profile changed on failed parse")
	}
}

func TestApplyValuesClampsOutOfRange(t *testing.T) {
	p := DefaultProfile()
	if _, err := p.ApplyValues(`{"enemy_density": 42.0}`); err != nil {
		t.Fatalf("ApplyValues: %v", err)
	}
	if got := p.Value(VarEnemyDensity); got != 1.0 {
		t.Errorf("enemy_density = %g, want clamped 1.0", got)
	}
}

func TestDescribeBoundsListsEveryVariable(t *testing.T) {
	p := DefaultProfile()
	desc := p.DescribeBounds()
	for _, v := range p.Variables() {
		if !strings.Contains(desc, v.Name) {
			t.Errorf("bounds description missing %s", v.Name)
		}
	}
}
