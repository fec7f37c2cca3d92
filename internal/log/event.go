package log

import "fmt"

// EventType enumerates the deck operations worth recording.
type EventType int

const (
	EventDecode EventType = iota
	EventEncode
	EventPageParse
	EventRender
	EventLibraryLoad
	EventError
)

func (e EventType) String() string {
	switch e {
	case EventDecode:
		return "Decode"
	case EventEncode:
		return "Encode"
	case EventPageParse:
		return "PageParse"
	case EventRender:
		return "Render"
	case EventLibraryLoad:
		return "LibraryLoad"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Event is a single recorded operation.
type Event struct {
	Seq         int       // monotonic sequence number
	Type        EventType // event type
	Source      string    // transport or command that ran the operation (e.g. "tcp", "web")
	Fingerprint string    // deck fingerprint (if applicable)
	Name        string    // deck name (if known)
	Details     string    // human-readable detail string
}

// --- Helper constructors for common events ---

func NewDecodeEvent(source, fingerprint, name string, heroes, cards int) Event {
	return Event{
		Source:      source,
		Type:        EventDecode,
		Fingerprint: fingerprint,
		Name:        name,
		Details:     fmt.Sprintf("decoded %s (%d heroes, %d cards)", fingerprint, heroes, cards),
	}
}

func NewEncodeEvent(source, fingerprint, name string, length int) Event {
	return Event{
		Source:      source,
		Type:        EventEncode,
		Fingerprint: fingerprint,
		Name:        name,
		Details:     fmt.Sprintf("encoded %s (%d chars)", fingerprint, length),
	}
}

func NewPageParseEvent(source, name string, found bool) Event {
	details := fmt.Sprintf("page %q has no deck string", name)
	if found {
		details = fmt.Sprintf("page %q parsed", name)
	}
	return Event{
		Source:  source,
		Type:    EventPageParse,
		Name:    name,
		Details: details,
	}
}

func NewRenderEvent(source, fingerprint, name string, lines int) Event {
	return Event{
		Source:      source,
		Type:        EventRender,
		Fingerprint: fingerprint,
		Name:        name,
		Details:     fmt.Sprintf("rendered %q as %d lines", name, lines),
	}
}

func NewLibraryLoadEvent(source, path string, decks int) Event {
	return Event{
		Source:  source,
		Type:    EventLibraryLoad,
		Details: fmt.Sprintf("loaded %d decks from %s", decks, path),
	}
}

func NewErrorEvent(source, op string, err error) Event {
	return Event{
		Source:  source,
		Type:    EventError,
		Details: fmt.Sprintf("%s failed: %v", op, err),
	}
}
