package analyzer

import (
	"testing"

	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

func TestSymptomNames(t *testing.T) {
	cases := map[Symptom]string{
		VeryLow:      "very.low",
		SlightlyLow:  "slightly.low",
		Normal:       "normal",
		SlightlyHigh: "slightly.high",
		SharplyHigh:  "sharply.high",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("Symptom(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
	if Symptom(99).String() != "unknown" {
		t.Error("out-of-range symptom should stringify as unknown")
	}
}

func TestStrugglingPlayer(t *testing.T) {
	a := New(DefaultThresholds())
	got := a.Classify(telemetry.Snapshot{
		Distance:           35,
		Deaths:             5,
		TotalRunTime:       30,
		AvgTimeBetweenDied: 6,
	})
	if got > Low {
		t.Errorf("struggling player classified %v, want low or worse", got)
	}
}

func TestDominantPlayer(t *testing.T) {
	a := New(DefaultThresholds())
	got := a.Classify(telemetry.Snapshot{
		Distance:     450,
		Deaths:       0,
		TotalRunTime: 120,
	})
	if got != SharplyHigh {
		t.Errorf("dominant player classified %v, want sharply.high", got)
	}
}

func TestZeroDistanceSpecialCase(t *testing.T) {
	a := New(DefaultThresholds())

	dead := a.Classify(telemetry.Snapshot{Deaths: 3, AvgTimeBetweenDied: 1})
	if dead != VeryLow {
		t.Errorf("zero distance with deaths classified %v, want very.low", dead)
	}

	idle := a.Classify(telemetry.Snapshot{})
	if idle != Normal {
		t.Errorf("zero distance, zero deaths classified %v, want normal", idle)
	}
}

func TestDeathRateMonotonic(t *testing.T) {
	a := New(DefaultThresholds())

	prev := SharplyHigh
	for deaths := 0; deaths <= 40; deaths++ {
		got := a.Classify(telemetry.Snapshot{
			Distance:           100,
			Deaths:             deaths,
			TotalRunTime:       60,
			AvgTimeBetweenDied: 30,
		})
		if deaths > 0 && got > prev {
			t.Fatalf("symptom improved from %v to %v when deaths rose to %d", prev, got, deaths)
		}
		if deaths > 0 {
			prev = got
		}
	}
}

func TestFusionAveragesAndRounds(t *testing.T) {
	a := New(DefaultThresholds())

	// Death rate 15/100 => very.low (0); avg gap 45s => slightly.high (4).
	// Mean 2.0 rounds to slightly.low.
	got := a.Classify(telemetry.Snapshot{
		Distance:           100,
		Deaths:             15,
		TotalRunTime:       600,
		AvgTimeBetweenDied: 45,
	})
	if got != SlightlyLow {
		t.Errorf("fused symptom = %v, want slightly.low", got)
	}

	// Death rate 0.5 => sharply.high (6); one death with 3s gap => very.low (0).
	// Mean 3.0 is exactly normal.
	got = a.Classify(telemetry.Snapshot{
		Distance:           200,
		Deaths:             1,
		TotalRunTime:       10,
		AvgTimeBetweenDied: 3,
	})
	if got != Normal {
		t.Errorf("fused symptom = %v, want normal", got)
	}
}
