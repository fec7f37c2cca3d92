// Package deck holds the in-memory deck model shared by the codec, the page
// parser and the transports.
package deck

import (
	"slices"

	"github.com/pkg/errors"
)

// CardID identifies a card definition in the external card database. It is
// never checked against that database here.
type CardID uint64

// Card is one distinct card entry and its number of copies.
type Card struct {
	ID    CardID `json:"id" yaml:"id"`
	Count uint64 `json:"count" yaml:"count"`
}

// Deck is a value type: format, heroes and card multiplicities. Name is
// display-only and is not part of the binary deck string.
type Deck struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Format Format   `json:"format" yaml:"format"`
	Heroes []CardID `json:"heroes" yaml:"heroes"`
	Cards  []Card   `json:"cards" yaml:"cards"`
}

// Errors returned by Validate.
var (
	// ErrNoHeroes is returned for a deck with an empty hero list.
	ErrNoHeroes = errors.New("deck has no hero")
	// ErrInvalidCardCount is returned for a card with a zero count.
	ErrInvalidCardCount = errors.New("card count must be at least 1")
	// ErrDuplicateCard is returned when a card ID appears in two entries.
	ErrDuplicateCard = errors.New("card listed more than once")
)

// Validate checks the invariants a deck must hold before it can be encoded.
func (d Deck) Validate() error {
	if len(d.Heroes) == 0 {
		return ErrNoHeroes
	}
	seen := make(map[CardID]bool, len(d.Cards))
	for _, c := range d.Cards {
		if c.Count == 0 {
			return errors.Wrapf(ErrInvalidCardCount, "card %d", c.ID)
		}
		if seen[c.ID] {
			return errors.Wrapf(ErrDuplicateCard, "card %d", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// Add adds n copies of id, merging with an existing entry.
func (d *Deck) Add(id CardID, n uint64) {
	if n == 0 {
		return
	}
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			d.Cards[i].Count += n
			return
		}
	}
	d.Cards = append(d.Cards, Card{ID: id, Count: n})
}

// Count returns the number of copies of id in the deck.
func (d Deck) Count(id CardID) uint64 {
	var n uint64
	for _, c := range d.Cards {
		if c.ID == id {
			n += c.Count
		}
	}
	return n
}

// Size returns the total number of cards, counting copies.
func (d Deck) Size() uint64 {
	var n uint64
	for _, c := range d.Cards {
		n += c.Count
	}
	return n
}

// Sorted returns a copy of the deck with cards ordered by ascending ID.
// Heroes keep their order.
func (d Deck) Sorted() Deck {
	out := d
	out.Heroes = slices.Clone(d.Heroes)
	out.Cards = slices.Clone(d.Cards)
	slices.SortStableFunc(out.Cards, compareCards)
	return out
}

// Equal reports whether d and o describe the same deck. Card order is
// ignored; Name is not compared.
func (d Deck) Equal(o Deck) bool {
	if d.Format != o.Format || !slices.Equal(d.Heroes, o.Heroes) || len(d.Cards) != len(o.Cards) {
		return false
	}
	a := slices.Clone(d.Cards)
	b := slices.Clone(o.Cards)
	slices.SortFunc(a, compareCards)
	slices.SortFunc(b, compareCards)
	return slices.Equal(a, b)
}

func compareCards(a, b Card) int {
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	case a.Count < b.Count:
		return -1
	case a.Count > b.Count:
		return 1
	}
	return 0
}
