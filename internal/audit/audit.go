// Package audit records section publications as a JSON Lines journal.
// Each line is one create or update event, tagged with the session that
// produced it, so a scripted run can be traced field by field.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/anyshake/prisma/internal/logging"
	"github.com/anyshake/prisma/internal/section"
)

// EventType classifies a journal entry.
type EventType string

const (
	EventCreate EventType = "create"
	EventUpdate EventType = "update"
	EventWrite  EventType = "write"
)

// Event represents a single journal entry.
type Event struct {
	Timestamp time.Time       `json:"timestamp"`
	Session   string          `json:"session"`
	Type      EventType       `json:"type"`
	Section   string          `json:"section,omitempty"`
	Draft     json.RawMessage `json:"draft,omitempty"`
	Details   string          `json:"details,omitempty"`
}

// Journal appends events to a JSONL file.
type Journal struct {
	path    string
	session string
}

// NewJournal creates a journal writing to path with a fresh session ID.
func NewJournal(path string) *Journal {
	return &Journal{path: path, session: uuid.NewString()}
}

// Session returns the ID stamped on every event of this run.
func (j *Journal) Session() string {
	return j.session
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Log appends an event to the journal.
func (j *Journal) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Session == "" {
		event.Session = j.session
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
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
func (j *Journal) LogEvent(eventType EventType, sectionKey, details string) error {
	return j.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Section:   sectionKey,
		Details:   details,
	})
}

// Publish journals a section event. Failures are logged and never reach the
// controller.
func (j *Journal) Publish(ev section.Event) {
	log := logging.With("session", j.session, "section", ev.Section)
	draft, err := json.Marshal(ev.Draft)
	if err != nil {
		log.Warn("failed to encode draft for journal", "error", err)
		return
	}
	eventType := EventUpdate
	if ev.Kind == section.EventCreate {
		eventType = EventCreate
	}
	if err := j.Log(Event{Type: eventType, Section: string(ev.Section), Draft: draft}); err != nil {
		log.Warn("failed to journal event", "error", err)
	}
}

// Events reads all journal events in chronological order.
func (j *Journal) Events() ([]Event, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
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
		return events, fmt.Errorf("error reading journal: %w", err)
	}

	return events, nil
}

// SessionEvents returns only the events recorded by this journal's session.
func (j *Journal) SessionEvents() ([]Event, error) {
	all, err := j.Events()
	if err != nil {
		return nil, err
	}
	var mine []Event
	for _, e := range all {
		if e.Session == j.session {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

// Remove deletes the journal file.
func (j *Journal) Remove() error {
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
