// Package pagetext reads and writes the multi-line deck export shared between
// players: a "###" title line, "#" comment lines and one deck string line.
//
//	### Mazzo Sciamano2
//	# Classe: Sciamano
//	# 2x (1) Dardo Fulminante
//	#
//	AAECAdL6AwbkuAPczAOczgP1zgPi7AOXoAQM27gDmLkD4cwD/tED8NQDqN4Dqt4D4OwDre4DjZ8E+Z8E/p8EAA==
//	#
//	# Per utilizzare questo mazzo, copialo negli appunti ...
//
// Text is scanned byte-wise for the markers; no encoding conversion happens.
package pagetext

import (
	"iter"
	"strings"
)

const (
	TitleMarker   = "###"
	CommentMarker = "#"
)

// LineKind classifies one line of page text.
type LineKind int

const (
	LineBlank LineKind = iota
	LineTitle
	LineComment
	LineDeckString
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineTitle:
		return "title"
	case LineComment:
		return "comment"
	case LineDeckString:
		return "deckstring"
	default:
		return "unknown"
	}
}

// Line is a classified line. Text has the marker and surrounding whitespace
// removed.
type Line struct {
	Number int // 1-based
	Kind   LineKind
	Text   string
}

// Page is what Parse extracts from page text.
type Page struct {
	Name       string
	DeckString string
	Comments   []string
}

// Lines yields the classified lines of text in order. Iteration is lazy and
// may be stopped at any point.
func Lines(text string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		n := 0
		for raw := range strings.Lines(text) {
			n++
			if !yield(classify(n, raw)) {
				return
			}
		}
	}
}

func classify(n int, raw string) Line {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return Line{Number: n, Kind: LineBlank}
	case strings.HasPrefix(s, TitleMarker):
		return Line{Number: n, Kind: LineTitle, Text: strings.TrimSpace(s[len(TitleMarker):])}
	case strings.HasPrefix(s, CommentMarker):
		return Line{Number: n, Kind: LineComment, Text: strings.TrimSpace(s[len(CommentMarker):])}
	default:
		return Line{Number: n, Kind: LineDeckString, Text: s}
	}
}

// Parse extracts the first title and the first deck string line. Lines after
// the deck string are ignored. Parse never fails: missing parts are left
// empty and decoding the deck string is up to the caller.
func Parse(text string) Page {
	var p Page
	titled := false
	for line := range Lines(text) {
		switch line.Kind {
		case LineTitle:
			if !titled {
				p.Name = line.Text
				titled = true
			}
		case LineComment:
			p.Comments = append(p.Comments, line.Text)
		case LineDeckString:
			p.DeckString = line.Text
			return p
		}
	}
	return p
}

// Name returns the text of the first title line, or "".
func Name(text string) string {
	return Parse(text).Name
}

// DeckString returns the first deck string line, unmodified apart from
// surrounding whitespace.
func DeckString(text string) (string, bool) {
	s := Parse(text).DeckString
	return s, s != ""
}

// ReadName copies the page name into buf as a zero-terminated byte string and
// returns the number of name bytes written. At most len(buf)-1 name bytes are
// copied; longer names are cut short, possibly inside a multi-byte character.
// An empty buf is left untouched.
func ReadName(text string, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	n := copy(buf[:len(buf)-1], Name(text))
	buf[n] = 0
	return n
}
