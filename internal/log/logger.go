// Package log records deck operations performed by the transports.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging deck events.
type EventLogger interface {
	Log(event Event)
	Events() []Event
}

// --- MemoryLogger: stores events in memory for test assertions ---

// MemoryLogger is safe for concurrent use.
type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event Event) {
	l.record(event)
}

func (l *MemoryLogger) record(event Event) Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
	return event
}

// Events returns a copy of the recorded events.
func (l *MemoryLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return Event{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	wmu sync.Mutex
	w   io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event Event) {
	event = l.MemoryLogger.record(event)
	l.wmu.Lock()
	defer l.wmu.Unlock()
	fmt.Fprintln(l.w, FormatEvent(event))
}

// Discard is an EventLogger that drops everything.
var Discard EventLogger = discard{}

type discard struct{}

func (discard) Log(Event)       {}
func (discard) Events() []Event { return nil }

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e Event) string {
	source := e.Source
	// Pad source to 6 chars for alignment
	for len(source) < 6 {
		source += " "
	}
	return fmt.Sprintf("#%-4d %s %-11s| %s", e.Seq, source, e.Type, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}
