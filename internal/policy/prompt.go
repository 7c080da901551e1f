package policy

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

// promptInstructions is the fixed situation/purpose/reasoning preamble
// sent on every request.
const promptInstructions = `You are a difficulty director for an endless runner platformer.
Your purpose is to keep the player in a state of flow: challenged but not
overwhelmed. You receive the player's performance symptom, raw metrics and
the current difficulty variables with their allowed ranges.

Reasoning rules:
- If the symptom is low (very.low, low, slightly.low), make the game easier:
  decrease harmful variables (enemy_density, gap_frequency, saw_weight,
  spike_weight, run_speed) and increase helpful ones (jump_strength,
  coin_density).
- If the symptom is high (slightly.high, high, sharply.high), make the game
  harder: do the opposite.
- If the symptom is normal, make at most small changes.
- Change values gradually. Stay strictly inside each variable's range.

Answer with a single flat JSON object mapping variable names to new numeric
values. Do not add commentary.
`

// builtinExamples seed the few-shot section until real exchanges fill
// the rolling buffer.
var builtinExamples = []Example{
	{
		Input: `symptom: low
metrics: distance 40.0, deaths 4, run time 35.0s, avg time between deaths 7.0s, coins 2, jumps/s 0.9
variables:
- enemy_density: current 0.6, allowed range [0.05, 1]
- jump_strength: current 10, allowed range [6, 14]`,
		Output: `{"enemy_density": 0.45, "gap_frequency": 0.4, "run_speed": 7.0, "jump_strength": 10.8, "saw_weight": 0.4, "spike_weight": 0.4, "coin_density": 0.6, "platform_height_variance": 1.2}`,
	},
	{
		Input: `symptom: sharply.high
metrics: distance 500.0, deaths 0, run time 130.0s, avg time between deaths 0.0s, coins 25, jumps/s 1.4
variables:
- enemy_density: current 0.5, allowed range [0.05, 1]
- jump_strength: current 10, allowed range [6, 14]`,
		Output: `{"enemy_density": 0.65, "gap_frequency": 0.6, "run_speed": 9.5, "jump_strength": 9.5, "saw_weight": 0.6, "spike_weight": 0.6, "coin_density": 0.4, "platform_height_variance": 1.8}`,
	},
}

// renderRequest formats the current situation as structured text: the
// symptom, the metrics, then every profile variable with its bounds.
func renderRequest(m telemetry.Snapshot, symptom analyzer.Symptom, profile *difficulty.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "symptom: %s\n", symptom)
	fmt.Fprintf(&b, "metrics: distance %.1f, deaths %d, run time %.1fs, avg time between deaths %.1fs, coins %d, jumps/s %.1f\n",
		m.Distance, m.Deaths, m.TotalRunTime, m.AvgTimeBetweenDied, m.CoinsCollected, m.JumpsPerSecond())
	b.WriteString("variables:\n")
	b.WriteString(profile.DescribeBounds())
	return b.String()
}

// buildPrompt concatenates instructions, few-shot examples (buffered
// exchanges, or the built-in pair set while the buffer is empty) and the
// current request.
func buildPrompt(m telemetry.Snapshot, symptom analyzer.Symptom, profile *difficulty.Profile, examples *ExampleBuffer) (prompt, request string) {
	request = renderRequest(m, symptom, profile)

	var b strings.Builder
	b.WriteString(promptInstructions)
	b.WriteString("\nExamples:\n\n")
	if examples.Len() > 0 {
		b.WriteString(examples.Render())
	} else {
		for _, e := range builtinExamples {
			b.WriteString("Request:\n")
			b.WriteString(e.Input)
			b.WriteString("\nResponse:\n")
			b.WriteString(e.Output)
			b.WriteString("\n\n")
		}
	}
	b.WriteString("Request:\n")
	b.WriteString(request)
	b.WriteString("\nResponse:\n")
	return b.String(), request
}
