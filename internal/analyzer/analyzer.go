package analyzer

import (
	"math"

	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

// Thresholds holds the two six-step ladders the classifier compares
// against. Both ladders are ascending.
type Thresholds struct {
	// DeathRate is deaths per 100 distance units, best to worst: a rate
	// below DeathRate[0] reads as sharply.high performance, a rate at or
	// above DeathRate[5] as very.low.
	DeathRate [6]float64 `yaml:"death_rate"`

	// SurvivalTime is average seconds between deaths, worst to best: a
	// gap below SurvivalTime[0] reads as very.low, a gap at or above
	// SurvivalTime[5] as sharply.high.
	SurvivalTime [6]float64 `yaml:"survival_time"`
}

// DefaultThresholds returns the reference ladders.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DeathRate:    [6]float64{1, 2, 4, 7, 10, 14},
		SurvivalTime: [6]float64{5, 10, 20, 40, 75, 120},
	}
}

// Analyzer classifies metric snapshots against configured ladders.
type Analyzer struct {
	thresholds Thresholds
}

// New creates an analyzer with the given ladders.
func New(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Classify fuses the death-rate and survival-time sub-classifications
// into one symptom. The two ordinal levels are averaged and rounded to
// the nearest integer, tie-breaking toward the midpoint on disagreement.
// That averaging is the designed fusion rule, not an approximation.
func (a *Analyzer) Classify(m telemetry.Snapshot) Symptom {
	byRate := a.classifyDeathRate(m)
	byTime := a.classifySurvivalTime(m)

	fused := math.Round(float64(byRate+byTime) / 2)
	return clampSymptom(int(fused))
}

// classifyDeathRate rates deaths per 100 distance units. With no
// distance traveled there is no rate to speak of: any death then means
// very.low, no deaths means normal.
func (a *Analyzer) classifyDeathRate(m telemetry.Snapshot) Symptom {
	if m.Distance <= 0 {
		if m.Deaths > 0 {
			return VeryLow
		}
		return Normal
	}

	rate := float64(m.Deaths) / m.Distance * 100
	t := a.thresholds.DeathRate
	switch {
	case rate < t[0]:
		return SharplyHigh
	case rate < t[1]:
		return High
	case rate < t[2]:
		return SlightlyHigh
	case rate < t[3]:
		return Normal
	case rate < t[4]:
		return SlightlyLow
	case rate < t[5]:
		return Low
	default:
		return VeryLow
	}
}

// classifySurvivalTime rates the average gap between deaths. With zero
// deaths there is no gap data; total run time alone then distinguishes
// only sharply.high, high and normal.
func (a *Analyzer) classifySurvivalTime(m telemetry.Snapshot) Symptom {
	t := a.thresholds.SurvivalTime
	if m.Deaths == 0 {
		switch {
		case m.TotalRunTime >= t[5]:
			return SharplyHigh
		case m.TotalRunTime >= t[4]:
			return High
		default:
			return Normal
		}
	}

	gap := m.AvgTimeBetweenDied
	switch {
	case gap < t[0]:
		return VeryLow
	case gap < t[1]:
		return Low
	case gap < t[2]:
		return SlightlyLow
	case gap < t[3]:
		return Normal
	case gap < t[4]:
		return SlightlyHigh
	case gap < t[5]:
		return High
	default:
		return SharplyHigh
	}
}
