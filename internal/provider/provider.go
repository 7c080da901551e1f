// Package provider abstracts the external text-generation endpoints the
// policy engine can talk to. Each provider has its own wire protocol and
// auth scheme; the engine only ever sees the Generator interface.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Name identifies a supported provider.
type Name string

const (
	Gemini    Name = "gemini"
	Anthropic Name = "anthropic"
)

// ErrNoCredential is returned when a client is constructed without an
// API key.
var ErrNoCredential = errors.New("provider: no API key configured")

// Generator produces completion text for a prompt. Implementations make
// exactly one HTTP round trip per call and honor context cancellation.
type Generator interface {
	// Name returns the provider identifier for logs.
	Name() string

	// Generate sends the prompt and returns the model's text output.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options configure a client independent of provider wire details.
type Options struct {
	APIKey      string
	Model       string        // empty uses the provider default
	BaseURL     string        // empty uses the provider default
	MaxTokens   int           // cap on generated tokens
	Temperature float64
	Timeout     time.Duration // transport timeout, default 10s
}

// DefaultTimeout bounds a single generation round trip. The adaptation
// cycle must never hang forever on a request that will not complete.
const DefaultTimeout = 10 * time.Second

// New constructs a Generator for the named provider.
func New(name Name, opts Options) (Generator, error) {
	switch name {
	case Gemini:
		return NewGeminiClient(opts)
	case Anthropic:
		return NewAnthropicClient(opts)
	default:
		return nil, fmt.Errorf("provider: unknown provider %q", name)
	}
}

// APIError is a non-2xx response from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s api status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IsAPIError extracts an APIError from an error chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
