package dda

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogEntry is one timestamped session event.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
}

// Session log event names.
const (
	EventSessionStart  = "session.start"
	EventSessionReset  = "session.reset"
	EventCycleStart    = "cycle.start"
	EventCycleComplete = "cycle.complete"
	EventCycleFailed   = "cycle.failed"
)

// SessionLog is an append-only record of what the controller did during
// a session. Appends may come from both the game goroutine and a plan
// goroutine. Held in memory and flushed to disk once, at teardown.
type SessionLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewSessionLog returns an empty log.
func NewSessionLog() *SessionLog {
	return &SessionLog{}
}

// Append records an event with optional data.
func (l *SessionLog) Append(event string, data map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{
		Timestamp: time.Now().UTC(),
		Event:     event,
		Data:      data,
	})
}

// Len returns the number of recorded entries.
func (l *SessionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the recorded entries in order.
func (l *SessionLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Flush writes the full entry list as a JSON array to a timestamped file
// in dir, creating the directory if needed. A log with no entries writes
// nothing. Returns the written path.
func (l *SessionLog) Flush(dir string, sessionID string) (string, error) {
	l.mu.Lock()
	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	if len(entries) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("dda: create log directory: %w", err)
	}

	name := fmt.Sprintf("session_%s_%s.json",
		time.Now().UTC().Format("20060102T150405"), sessionID)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("dda: marshal session log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("dda: write session log: %w", err)
	}
	return path, nil
}
