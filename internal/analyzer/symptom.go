// Package analyzer classifies accumulated player metrics into a discrete
// performance symptom. Classification is deterministic and side-effect
// free: the same snapshot always yields the same symptom.
package analyzer

// Symptom is an ordinal measure of player performance, worst to best.
type Symptom int

const (
	VeryLow Symptom = iota
	Low
	SlightlyLow
	Normal
	SlightlyHigh
	High
	SharplyHigh
)

var symptomNames = [...]string{
	"very.low",
	"low",
	"slightly.low",
	"normal",
	"slightly.high",
	"high",
	"sharply.high",
}

// String returns the canonical lowercase dot-separated name used in
// outbound requests and logs.
func (s Symptom) String() string {
	if s < VeryLow || s > SharplyHigh {
		return "unknown"
	}
	return symptomNames[s]
}

// clampSymptom restricts an integer level to the valid symptom range.
func clampSymptom(level int) Symptom {
	if level < int(VeryLow) {
		return VeryLow
	}
	if level > int(SharplyHigh) {
		return SharplyHigh
	}
	return Symptom(level)
}
