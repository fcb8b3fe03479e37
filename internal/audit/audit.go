// Package audit records a history of hosts table changes.
// Events are stored as JSON Lines (JSONL), one file per user.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EventType classifies a hosts table change.
type EventType string

const (
	EventApply   EventType = "apply"
	EventRevert  EventType = "revert"
	EventRestore EventType = "restore-default"
)

// Event represents a single history entry.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Mode      string    `json:"mode,omitempty"`
	Regions   []string  `json:"regions,omitempty"`
	HostsPath string    `json:"hosts_path,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends and reads events in a single JSONL file.
type Logger struct {
	path string
}

// NewLogger creates a logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the history file location.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event, filling in its ID and timestamp when unset.
func (l *Logger) Log(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, mode string, regions []string, details string) error {
	return l.Log(Event{
		Type:    eventType,
		Mode:    mode,
		Regions: regions,
		Details: details,
	})
}

// Events reads all events in chronological order.
func (l *Logger) Events() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	return events, nil
}

// Recent returns up to n of the newest events, newest first. n <= 0 returns all.
func (l *Logger) Recent(n int) ([]Event, error) {
	events, err := l.Events()
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(events) {
		n = len(events)
	}
	out := make([]Event, 0, n)
	for i := len(events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, events[i])
	}
	return out, nil
}

// Last returns the newest event of the given type.
func (l *Logger) Last(eventType EventType) (Event, bool, error) {
	events, err := l.Events()
	if err != nil {
		return Event{}, false, err
	}
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == eventType {
			return events[i], true, nil
		}
	}
	return Event{}, false, nil
}

// Clear deletes the history file.
func (l *Logger) Clear() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
