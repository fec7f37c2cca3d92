package deck

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		deck Deck
		want error
	}{
		{"ok", Deck{Heroes: []CardID{7}, Cards: []Card{{1, 1}, {2, 2}, {3, 5}}}, nil},
		{"no cards is fine", Deck{Heroes: []CardID{7}}, nil},
		{"no heroes", Deck{Cards: []Card{{1, 1}}}, ErrNoHeroes},
		{"zero count", Deck{Heroes: []CardID{7}, Cards: []Card{{1, 0}}}, ErrInvalidCardCount},
		{"duplicate", Deck{Heroes: []CardID{7}, Cards: []Card{{1, 1}, {1, 1}}}, ErrDuplicateCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deck.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddMerges(t *testing.T) {
	var d Deck
	d.Add(10, 1)
	d.Add(20, 2)
	d.Add(10, 1)
	d.Add(30, 0)

	if len(d.Cards) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(d.Cards), d.Cards)
	}
	if d.Count(10) != 2 {
		t.Errorf("Count(10) = %d, want 2", d.Count(10))
	}
	if d.Count(30) != 0 {
		t.Errorf("Count(30) = %d, want 0", d.Count(30))
	}
	if d.Size() != 4 {
		t.Errorf("Size() = %d, want 4", d.Size())
	}
}

func TestEqualIgnoresCardOrder(t *testing.T) {
	a := Deck{Format: FormatWild, Heroes: []CardID{1}, Cards: []Card{{5, 1}, {3, 2}, {9, 4}}}
	b := Deck{Name: "other name", Format: FormatWild, Heroes: []CardID{1}, Cards: []Card{{9, 4}, {5, 1}, {3, 2}}}
	if !a.Equal(b) {
		t.Error("expected decks to be equal")
	}

	c := b
	c.Cards = []Card{{9, 4}, {5, 2}, {3, 2}}
	if a.Equal(c) {
		t.Error("decks with different counts compared equal")
	}

	d := b
	d.Format = FormatStandard
	if a.Equal(d) {
		t.Error("decks with different formats compared equal")
	}
}

func TestSortedDoesNotAlias(t *testing.T) {
	d := Deck{Heroes: []CardID{1}, Cards: []Card{{5, 1}, {3, 2}}}
	s := d.Sorted()
	if s.Cards[0].ID != 3 || s.Cards[1].ID != 5 {
		t.Fatalf("unexpected order: %v", s.Cards)
	}
	if d.Cards[0].ID != 5 {
		t.Fatal("Sorted modified the receiver")
	}
}

func TestFormatText(t *testing.T) {
	for _, f := range []Format{FormatUnknown, FormatWild, FormatStandard, FormatClassic, FormatTwist, Format(42)} {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", f, err)
		}
		var back Format
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != f {
			t.Errorf("%q parsed to %d, want %d", text, back, f)
		}
	}

	if f, err := ParseFormat("standard"); err != nil || f != FormatStandard {
		t.Errorf("ParseFormat(standard) = %v, %v", f, err)
	}
	if f, err := ParseFormat("2"); err != nil || f != FormatStandard {
		t.Errorf("ParseFormat(2) = %v, %v", f, err)
	}
	if _, err := ParseFormat("arena"); err == nil {
		t.Error("expected error for unknown format name")
	}
}

func TestDeckJSON(t *testing.T) {
	d := Deck{Name: "Shaman", Format: FormatStandard, Heroes: []CardID{64850}, Cards: []Card{{56420, 1}}}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Shaman","format":"Standard","heroes":[64850],"cards":[{"id":56420,"count":1}]}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}
