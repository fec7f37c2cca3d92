package net

import (
	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/deckstring"
)

// Message types for the newline-delimited JSON protocol spoken over TCP and
// the web socket.

const (
	TypeDecode = "decode"
	TypeEncode = "encode"
	TypePage   = "page"
	TypeRender = "render"

	TypeDeck       = "deck"
	TypeDeckString = "deckstring"
	TypeError      = "error"
)

// KindBadRequest is the error kind for malformed requests.
const KindBadRequest = "bad_request"

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	// For "decode"
	DeckString string `json:"deckstring,omitempty"`

	// For "page"
	Page     string `json:"page,omitempty"`
	Capacity int    `json:"capacity,omitempty"` // name buffer size, 0 for unbounded

	// For "encode" and "render"
	Deck *deck.Deck `json:"deck,omitempty"`
}

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	// For "deck", "deckstring" and "page"
	Deck       *DeckView `json:"deck,omitempty"`
	DeckString string    `json:"deckstring,omitempty"`

	// For "page"
	Name string `json:"name,omitempty"`
	Page string `json:"page,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// DeckView is a deck as presented to clients.
type DeckView struct {
	Name        string        `json:"name,omitempty"`
	Format      deck.Format   `json:"format"`
	FormatID    uint64        `json:"format_id"`
	Heroes      []deck.CardID `json:"heroes"`
	Cards       []deck.Card   `json:"cards"`
	Size        uint64        `json:"size"`
	DeckString  string        `json:"deckstring,omitempty"`  // canonical encoding, if the deck can be encoded
	Fingerprint string        `json:"fingerprint,omitempty"` // same condition
}

// BuildDeckView builds the client view of d with cards in ID order.
func BuildDeckView(d deck.Deck) *DeckView {
	sorted := d.Sorted()
	v := &DeckView{
		Name:     d.Name,
		Format:   d.Format,
		FormatID: uint64(d.Format),
		Heroes:   sorted.Heroes,
		Cards:    sorted.Cards,
		Size:     d.Size(),
	}
	if v.Heroes == nil {
		v.Heroes = []deck.CardID{}
	}
	if v.Cards == nil {
		v.Cards = []deck.Card{}
	}
	if code, err := deckstring.Encode(d); err == nil {
		v.DeckString = code
		v.Fingerprint, _ = deckstring.Fingerprint(d)
	}
	return v
}

// Deck converts the view back into a deck.
func (v *DeckView) Deck() deck.Deck {
	return deck.Deck{Name: v.Name, Format: v.Format, Heroes: v.Heroes, Cards: v.Cards}
}

// ErrorMessage builds an error reply for err.
func ErrorMessage(id string, err error) ServerMessage {
	return ServerMessage{Type: TypeError, ID: id, Error: err.Error(), Kind: deckstring.Kind(err)}
}
