package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/library"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
	"github.com/peterkuimelis/hsdeck/internal/pagetext"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number      int         `json:"number"`
	Name        string      `json:"name"`
	Format      deck.Format `json:"format,omitempty"`
	Size        uint64      `json:"size,omitempty"`
	DeckString  string      `json:"deckstring,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
	Error       string      `json:"error,omitempty"`
}

func readLibrary(path string) (*library.File, error) {
	return library.ReadFile(path)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	f, err := readLibrary(s.decksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}

	decks := []DeckInfo{}
	for i, e := range f.Decks {
		di := DeckInfo{Number: i + 1, Name: e.Name}
		// Broken entries are listed with their error so the rest stay usable
		d, err := f.Resolve(i)
		if err != nil {
			di.Error = err.Error()
			decks = append(decks, di)
			continue
		}
		v := decknet.BuildDeckView(d)
		di.Name = d.Name
		di.Format = d.Format
		di.Size = v.Size
		di.DeckString = v.DeckString
		di.Fingerprint = v.Fingerprint
		decks = append(decks, di)
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	d, _, ok := s.resolveDeck(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, decknet.BuildDeckView(d))
}

func (s *Server) handleDeckPage(w http.ResponseWriter, r *http.Request) {
	d, f, ok := s.resolveDeck(w, r)
	if !ok {
		return
	}
	text, err := pagetext.Render(d, f.Catalog())
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, decknet.ErrorMessage("", err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, text)
}

func (s *Server) resolveDeck(w http.ResponseWriter, r *http.Request) (deck.Deck, *library.File, bool) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		http.Error(w, "deck number must be an integer", http.StatusBadRequest)
		return deck.Deck{}, nil, false
	}
	f, err := readLibrary(s.decksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return deck.Deck{}, nil, false
	}
	if n < 1 || n > len(f.Decks) {
		http.Error(w, fmt.Sprintf("deck %d not found", n), http.StatusNotFound)
		return deck.Deck{}, nil, false
	}
	d, err := f.Resolve(n - 1)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, decknet.ErrorMessage("", err))
		return deck.Deck{}, nil, false
	}
	return d, f, true
}
