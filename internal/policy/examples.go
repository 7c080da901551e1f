package policy

import "strings"

// Example is one realized (request, response) pair kept as few-shot
// context for later prompts.
type Example struct {
	Input  string
	Output string
}

// ExampleBuffer is a bounded FIFO of examples. Appending beyond capacity
// evicts the oldest entry.
type ExampleBuffer struct {
	entries []Example
	cap     int
}

// DefaultExampleCapacity bounds the rolling few-shot context.
const DefaultExampleCapacity = 5

// NewExampleBuffer creates a buffer with the given capacity. A capacity
// of zero or less falls back to the default.
func NewExampleBuffer(capacity int) *ExampleBuffer {
	if capacity <= 0 {
		capacity = DefaultExampleCapacity
	}
	return &ExampleBuffer{cap: capacity}
}

// Add appends an example, evicting the oldest beyond capacity.
func (b *ExampleBuffer) Add(e Example) {
	b.entries = append(b.entries, e)
	if len(b.entries) > b.cap {
		b.entries = b.entries[len(b.entries)-b.cap:]
	}
}

// Len returns the number of buffered examples.
func (b *ExampleBuffer) Len() int { return len(b.entries) }

// Entries returns the buffered examples oldest first.
func (b *ExampleBuffer) Entries() []Example {
	out := make([]Example, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clear drops every buffered example.
func (b *ExampleBuffer) Clear() {
	b.entries = nil
}

// Render formats examples as prompt text, oldest first.
func (b *ExampleBuffer) Render() string {
	var sb strings.Builder
	for _, e := range b.entries {
		sb.WriteString("Request:\n")
		sb.WriteString(e.Input)
		sb.WriteString("\nResponse:\n")
		sb.WriteString(e.Output)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
