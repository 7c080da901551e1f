// Package policy implements the Plan stage: it asks an external text
// generation endpoint for new difficulty values and validates whatever
// comes back. The engine owns the current profile and the rolling
// example buffer, and guarantees at most one request in flight.
//
// Every failure path degrades to "no change": a transport error, a bad
// status, malformed output or a concurrent request all return the
// current profile untouched. Difficulty silently not changing for one
// cycle is the designed fallback.
package policy

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyrunner/internal/analyzer"
	"github.com/vovakirdan/skyrunner/internal/difficulty"
	"github.com/vovakirdan/skyrunner/internal/provider"
	"github.com/vovakirdan/skyrunner/internal/telemetry"
)

// ErrNoProfile reports a caller/configuration error: the engine was
// asked to plan before a current profile existed. Unlike provider
// failures this is fatal to the cycle.
var ErrNoProfile = errors.New("policy: no current profile configured")

// Config tunes the engine.
type Config struct {
	ExampleCapacity int           // rolling few-shot buffer size, default 5
	RequestTimeout  time.Duration // per-request deadline, default 10s
}

// Engine is the LLM-backed policy planner.
type Engine struct {
	gen    provider.Generator // nil when no credential is configured
	logger *log.Logger
	cfg    Config

	mu       sync.Mutex
	inFlight bool
	current  *difficulty.Profile
	examples *ExampleBuffer
}

// NewEngine creates a planner. gen may be nil when no provider
// credential is configured; the engine then always answers "no change".
// template is copied; the engine never mutates the caller's profile.
func NewEngine(gen provider.Generator, template *difficulty.Profile, cfg Config, logger *log.Logger) *Engine {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = provider.DefaultTimeout
	}
	e := &Engine{
		gen:      gen,
		logger:   logger,
		cfg:      cfg,
		examples: NewExampleBuffer(cfg.ExampleCapacity),
	}
	if template != nil {
		e.current = template.Copy()
	}
	return e
}

// CurrentProfile returns a copy of the profile currently in effect, or
// nil if none is configured.
func (e *Engine) CurrentProfile() *difficulty.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	return e.current.Copy()
}

// ExampleCount reports how many few-shot exchanges are buffered.
func (e *Engine) ExampleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.examples.Len()
}

// InFlight reports whether a request is currently outstanding.
func (e *Engine) InFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

// ResetExamples drops the rolling example buffer when starting a fresh
// evaluation session.
func (e *Engine) ResetExamples() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.examples.Clear()
}

// RequestAdjustment runs one planning round trip and returns the profile
// to apply. The call blocks for at most the configured request timeout;
// it is the single suspension point of the adaptation cycle.
//
// The returned profile is always a copy safe for the caller to hold. An
// error is returned only for the fatal configuration case of a missing
// current profile; every other failure logs and returns the unchanged
// current profile.
func (e *Engine) RequestAdjustment(ctx context.Context, m telemetry.Snapshot, symptom analyzer.Symptom) (*difficulty.Profile, error) {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return nil, ErrNoProfile
	}
	unchanged := e.current.Copy()
	if e.inFlight {
		e.mu.Unlock()
		e.logger.Info("adjustment request already in flight, keeping current profile")
		return unchanged, nil
	}
	if e.gen == nil {
		e.mu.Unlock()
		e.logger.Warn("no provider configured, keeping current profile")
		return unchanged, nil
	}
	e.inFlight = true
	working := e.current.Copy()
	prompt, request := buildPrompt(m, symptom, working, e.examples)
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight = false
		e.mu.Unlock()
	}()

	reqCtx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	raw, err := e.gen.Generate(reqCtx, prompt)
	if err != nil {
		e.logger.Warn("provider request failed, keeping current profile",
			"provider", e.gen.Name(), "error", err)
		return unchanged, nil
	}

	text := stripCodeFence(raw)
	if text == "" {
		e.logger.Warn("provider returned empty text, keeping current profile",
			"provider", e.gen.Name())
		return unchanged, nil
	}

	res, err := working.ApplyValues(text)
	if err != nil {
		e.logger.Warn("could not parse provider output, keeping current profile",
			"provider", e.gen.Name(), "error", err)
		return unchanged, nil
	}
	for _, name := range res.Unknown {
		e.logger.Warn("provider suggested unknown variable, ignoring", "variable", name)
	}
	for _, name := range res.Skipped {
		e.logger.Warn("provider sent non-numeric value, ignoring", "variable", name)
	}

	// ApplyValues clamps per variable, but re-clamp the whole profile as
	// the last line of defense before committing.
	working.ClampAll()

	e.mu.Lock()
	e.current = working
	e.examples.Add(Example{Input: request, Output: text})
	committed := e.current.Copy()
	e.mu.Unlock()

	e.logger.Info("difficulty profile updated",
		"symptom", symptom.String(), "applied", len(res.Applied))
	return committed, nil
}
