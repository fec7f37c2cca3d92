package net

import (
	"errors"
	"fmt"
	"strings"

	"github.com/peterkuimelis/hsdeck/internal/deckstring"
	"github.com/peterkuimelis/hsdeck/internal/log"
	"github.com/peterkuimelis/hsdeck/internal/pagetext"
)

// Handler answers protocol requests. It holds no per-request state and may
// be shared between connections.
type Handler struct {
	Source  string           // recorded on every event
	Logger  log.EventLogger  // nil disables recording
	Catalog pagetext.Catalog // used by "render"; may be nil
}

// Handle answers a single request.
func (h *Handler) Handle(msg ClientMessage) ServerMessage {
	switch msg.Type {
	case TypeDecode:
		return h.decode(msg)
	case TypeEncode:
		return h.encode(msg)
	case TypePage:
		return h.page(msg)
	case TypeRender:
		return h.render(msg)
	default:
		return h.badRequest(msg, fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (h *Handler) decode(msg ClientMessage) ServerMessage {
	if strings.TrimSpace(msg.DeckString) == "" {
		return h.badRequest(msg, "deckstring is required")
	}
	d, err := deckstring.Decode(msg.DeckString)
	if err != nil {
		return h.fail(msg, TypeDecode, err)
	}
	view := BuildDeckView(d)
	h.log(log.NewDecodeEvent(h.Source, view.Fingerprint, d.Name, len(d.Heroes), len(d.Cards)))
	return ServerMessage{Type: TypeDeck, ID: msg.ID, Deck: view, DeckString: msg.DeckString}
}

func (h *Handler) encode(msg ClientMessage) ServerMessage {
	if msg.Deck == nil {
		return h.badRequest(msg, "deck is required")
	}
	code, err := deckstring.Encode(*msg.Deck)
	if err != nil {
		return h.fail(msg, TypeEncode, err)
	}
	view := BuildDeckView(*msg.Deck)
	h.log(log.NewEncodeEvent(h.Source, view.Fingerprint, msg.Deck.Name, len(code)))
	return ServerMessage{Type: TypeDeckString, ID: msg.ID, Deck: view, DeckString: code}
}

func (h *Handler) page(msg ClientMessage) ServerMessage {
	p := pagetext.Parse(msg.Page)
	name := p.Name
	if msg.Capacity > 0 {
		// ReadName never writes more than the name and its terminator.
		buf := make([]byte, min(msg.Capacity, len(p.Name)+1))
		name = string(buf[:pagetext.ReadName(msg.Page, buf)])
	}
	h.log(log.NewPageParseEvent(h.Source, name, p.DeckString != ""))

	reply := ServerMessage{Type: TypePage, ID: msg.ID, Name: name, DeckString: p.DeckString}
	if p.DeckString == "" {
		return reply
	}
	d, err := deckstring.Decode(p.DeckString)
	if err != nil {
		reply := h.fail(msg, TypeDecode, err)
		reply.Name = name
		return reply
	}
	d.Name = name
	reply.Deck = BuildDeckView(d)
	return reply
}

func (h *Handler) render(msg ClientMessage) ServerMessage {
	if msg.Deck == nil {
		return h.badRequest(msg, "deck is required")
	}
	text, err := pagetext.Render(*msg.Deck, h.Catalog)
	if err != nil {
		return h.fail(msg, TypeRender, err)
	}
	view := BuildDeckView(*msg.Deck)
	h.log(log.NewRenderEvent(h.Source, view.Fingerprint, msg.Deck.Name, strings.Count(text, "\n")))
	return ServerMessage{Type: TypePage, ID: msg.ID, Deck: view, DeckString: view.DeckString, Name: pagetext.Name(text), Page: text}
}

func (h *Handler) fail(msg ClientMessage, op string, err error) ServerMessage {
	h.log(log.NewErrorEvent(h.Source, op, err))
	return ErrorMessage(msg.ID, err)
}

func (h *Handler) badRequest(msg ClientMessage, reason string) ServerMessage {
	reply := h.fail(msg, msg.Type, errors.New(reason))
	reply.Kind = KindBadRequest
	return reply
}

func (h *Handler) log(e log.Event) {
	if h.Logger != nil {
		h.Logger.Log(e)
	}
}
