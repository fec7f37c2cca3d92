// Package library reads and writes the YAML deck library:
//
//	decks:
//	  - name: Mazzo Sciamano2
//	    deckstring: AAECAdL6Aw...
//	  - page: |
//	      ### Tempo Mage
//	      AAEBAf0EBu0F...
//	cards:
//	  - id: 64850
//	    name: Thrall
//	    cost: 0
package library

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/deckstring"
	"github.com/peterkuimelis/hsdeck/internal/pagetext"
)

// File represents the top-level YAML structure.
type File struct {
	Decks []Entry     `yaml:"decks"`
	Cards []CardEntry `yaml:"cards,omitempty"`
}

// Entry is a single deck in the library. Either DeckString or Page must be
// set; Name overrides the page title.
type Entry struct {
	Name       string `yaml:"name,omitempty"`
	DeckString string `yaml:"deckstring,omitempty"`
	Page       string `yaml:"page,omitempty"`
}

// CardEntry is one card of the optional catalog used for page rendering.
type CardEntry struct {
	ID   deck.CardID `yaml:"id"`
	Name string      `yaml:"name"`
	Cost int         `yaml:"cost"`
}

// Parse parses library YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &f, nil
}

// ReadFile reads and parses a library file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Save writes f to path.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal deck YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Resolve decodes entry i (0-indexed).
func (f *File) Resolve(i int) (deck.Deck, error) {
	if i < 0 || i >= len(f.Decks) {
		return deck.Deck{}, fmt.Errorf("deck %d not found (have %d decks)", i+1, len(f.Decks))
	}
	e := f.Decks[i]

	code, name := e.DeckString, e.Name
	if code == "" && e.Page != "" {
		p := pagetext.Parse(e.Page)
		code = p.DeckString
		if name == "" {
			name = p.Name
		}
	}
	if code == "" {
		return deck.Deck{}, fmt.Errorf("deck %d has no deck string", i+1)
	}

	d, err := deckstring.Decode(code)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("deck %d: %w", i+1, err)
	}
	d.Name = name
	return d, nil
}

// Decks decodes every entry.
func (f *File) Decks() ([]deck.Deck, error) {
	decks := make([]deck.Deck, 0, len(f.Decks))
	for i := range f.Decks {
		d, err := f.Resolve(i)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// Add encodes d and appends it. It returns the 1-indexed deck number, or the
// number of an existing equal deck.
func (f *File) Add(d deck.Deck) (int, error) {
	code, err := deckstring.Encode(d)
	if err != nil {
		return 0, err
	}
	for i := range f.Decks {
		existing, err := f.Resolve(i)
		if err != nil {
			continue
		}
		if existing.Equal(d) {
			return i + 1, nil
		}
	}
	f.Decks = append(f.Decks, Entry{Name: d.Name, DeckString: code})
	return len(f.Decks), nil
}

// Catalog returns the card catalog of the file.
func (f *File) Catalog() Catalog {
	c := make(Catalog, len(f.Cards))
	for _, e := range f.Cards {
		c[e.ID] = pagetext.CardInfo{Name: e.Name, Cost: e.Cost}
	}
	return c
}

// Load reads a library file and decodes all of its decks.
func Load(path string) ([]deck.Deck, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Decks()
}

// DeckByNumber returns the Nth deck (1-indexed) from the library file.
func DeckByNumber(path string, n int) (deck.Deck, error) {
	f, err := ReadFile(path)
	if err != nil {
		return deck.Deck{}, err
	}
	return f.Resolve(n - 1)
}
