package pagetext

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/deckstring"
)

const shamanPage = "### Mazzo Sciamano2\n" +
	"# Classe: Sciamano\n" +
	"# Formato: Standard\n" +
	"# Anno del Grifone\n" +
	"# \n" +
	"# 2x (0) Fioritura Fulminea\n" +
	"# 2x (1) Dardo Fulminante\n" +
	"# 1x (2) Thalnos\n" +
	"# 2x (5) Martelfato\n" +
	"# \n" +
	"AAECAdL6AwbkuAPczAOczgP1zgPi7AOXoAQM27gDmLkD4cwD/tED8NQDqN4Dqt4D4OwDre4DjZ8E+Z8E/p8EAA==\n" +
	"# \n" +
	"# Per utilizzare questo mazzo, copialo negli appunti e crea un nuovo mazzo in Hearthstone"

func TestParseShamanPage(t *testing.T) {
	p := Parse(shamanPage)
	if p.Name != "Mazzo Sciamano2" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.DeckString != "AAECAdL6AwbkuAPczAOczgP1zgPi7AOXoAQM27gDmLkD4cwD/tED8NQDqN4Dqt4D4OwDre4DjZ8E+Z8E/p8EAA==" {
		t.Errorf("DeckString = %q", p.DeckString)
	}
	if len(p.Comments) != 9 {
		t.Errorf("got %d comments before the deck string, want 9: %q", len(p.Comments), p.Comments)
	}
	if p.Comments[0] != "Classe: Sciamano" {
		t.Errorf("first comment = %q", p.Comments[0])
	}

	d, err := deckstring.Decode(p.DeckString)
	if err != nil {
		t.Fatalf("extracted deck string does not decode: %v", err)
	}
	if d.Heroes[0] != 64850 {
		t.Errorf("hero = %d", d.Heroes[0])
	}
}

func TestReadNameShamanPage(t *testing.T) {
	for _, capacity := range []int{16, 17, 64, 256} {
		buf := make([]byte, capacity)
		n := ReadName(shamanPage, buf)
		if got := string(buf[:n]); got != "Mazzo Sciamano2" {
			t.Errorf("capacity %d: got %q", capacity, got)
		}
		if buf[n] != 0 {
			t.Errorf("capacity %d: missing terminator", capacity)
		}
	}
}

func TestReadNameTruncates(t *testing.T) {
	long := strings.Repeat("x", 100)
	text := "### " + long + "\nAAAA\n"

	guard := byte(0xAA)
	backing := bytes.Repeat([]byte{guard}, 20)
	buf := backing[:10]

	n := ReadName(text, buf)
	if n != 9 {
		t.Fatalf("wrote %d bytes, want 9", n)
	}
	if string(buf[:9]) != long[:9] {
		t.Errorf("got %q", buf[:9])
	}
	if buf[9] != 0 {
		t.Error("missing terminator")
	}
	for i := 10; i < len(backing); i++ {
		if backing[i] != guard {
			t.Fatalf("byte %d past the buffer was overwritten", i)
		}
	}
}

func TestReadNameTinyBuffers(t *testing.T) {
	if n := ReadName(shamanPage, nil); n != 0 {
		t.Errorf("nil buffer: wrote %d", n)
	}
	buf := []byte{0xff}
	if n := ReadName(shamanPage, buf); n != 0 || buf[0] != 0 {
		t.Errorf("one byte buffer: n=%d buf=%v", n, buf)
	}
}

func TestReadNameKeepsMultiByteText(t *testing.T) {
	text := "###   Colère du Néant  \n"
	buf := make([]byte, 64)
	n := ReadName(text, buf)
	if got := string(buf[:n]); got != "Colère du Néant" {
		t.Errorf("got %q", got)
	}
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantCode string
	}{
		{"empty", "", "", ""},
		{"comments only", "# a\n# b\n", "", ""},
		{"no title", "# Class: Mage\n\nAAEBAQcAAAA=\n", "", "AAEBAQcAAAA="},
		{"first title wins", "### One\n### Two\nAAEBAQcAAAA=\n", "One", "AAEBAQcAAAA="},
		{"title after deck string ignored", "AAEBAQcAAAA=\n### Late\n", "", "AAEBAQcAAAA="},
		{"double hash is a comment", "## not a title\nAAEBAQcAAAA=", "", "AAEBAQcAAAA="},
		{"crlf line endings", "### Win\r\n#\r\nAAEBAQcAAAA=\r\n", "Win", "AAEBAQcAAAA="},
		{"indented lines", "  ### Spaced  \n\t#x\n   AAEBAQcAAAA=  \n", "Spaced", "AAEBAQcAAAA="},
		{"first payload line only", "### A\nfirst\nsecond\n", "A", "first"},
		{"empty title", "###\nAAEBAQcAAAA=", "", "AAEBAQcAAAA="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.text)
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if p.DeckString != tt.wantCode {
				t.Errorf("DeckString = %q, want %q", p.DeckString, tt.wantCode)
			}
			code, ok := DeckString(tt.text)
			if ok != (tt.wantCode != "") || code != tt.wantCode {
				t.Errorf("DeckString() = %q, %v", code, ok)
			}
		})
	}
}

func TestLinesStopsEarly(t *testing.T) {
	var kinds []LineKind
	for line := range Lines("### T\n# c\n\nCODE\n# after\n") {
		kinds = append(kinds, line.Kind)
		if line.Kind == LineDeckString {
			break
		}
	}
	want := []LineKind{LineTitle, LineComment, LineBlank, LineDeckString}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

type mapCatalog map[deck.CardID]CardInfo

func (m mapCatalog) Lookup(id deck.CardID) (CardInfo, bool) {
	info, ok := m[id]
	return info, ok
}

func TestRenderRoundTrip(t *testing.T) {
	d := deck.Deck{
		Name:   "Tempo Mage",
		Format: deck.FormatWild,
		Heroes: []deck.CardID{637},
		Cards:  []deck.Card{{ID: 30, Count: 2}, {ID: 10, Count: 1}, {ID: 20, Count: 3}, {ID: 99, Count: 1}},
	}
	cat := mapCatalog{
		637: {Name: "Jaina Proudmoore"},
		10:  {Name: "Fireball", Cost: 4},
		20:  {Name: "Arcane Missiles", Cost: 1},
		30:  {Name: "Frostbolt", Cost: 2},
	}

	text, err := Render(d, cat)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantLines := []string{
		"### Tempo Mage",
		"# Class: Jaina Proudmoore",
		"# Format: Wild",
		"#",
		"# 3x (1) Arcane Missiles",
		"# 2x (2) Frostbolt",
		"# 1x (4) Fireball",
		"# 1x (?) Card 99",
		"#",
	}
	lines := strings.Split(text, "\n")
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want)
		}
	}

	p := Parse(text)
	if p.Name != "Tempo Mage" {
		t.Errorf("parsed name %q", p.Name)
	}
	back, err := deckstring.Decode(p.DeckString)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("rendered deck string decodes to %+v", back)
	}
}

func TestRenderFoldsLineBreaksInName(t *testing.T) {
	d := deck.Deck{
		Name:   "Tempo\nMage\r\nv2",
		Format: deck.FormatStandard,
		Heroes: []deck.CardID{637},
		Cards:  []deck.Card{{ID: 10, Count: 2}},
	}
	text, err := Render(d, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	p := Parse(text)
	if p.Name != "Tempo Mage v2" {
		t.Errorf("parsed name %q", p.Name)
	}
	back, err := deckstring.Decode(p.DeckString)
	if err != nil {
		t.Fatalf("Decode(%q): %v", p.DeckString, err)
	}
	if !back.Equal(d) {
		t.Errorf("rendered deck string decodes to %+v", back)
	}

	if text, _ := Render(deck.Deck{Name: "\n", Heroes: []deck.CardID{7}}, nil); Name(text) != DefaultName {
		t.Errorf("blank name rendered as %q", Name(text))
	}
}

func TestRenderWithoutCatalog(t *testing.T) {
	d := deck.Deck{Heroes: []deck.CardID{7}, Cards: []deck.Card{{ID: 1, Count: 2}}}
	text, err := Render(d, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(text, "### Deck\n# Class: Hero 7\n") {
		t.Errorf("unexpected header:\n%s", text)
	}
	if Name(text) != DefaultName {
		t.Errorf("Name = %q", Name(text))
	}
}

func TestRenderRejectsInvalidDeck(t *testing.T) {
	if _, err := Render(deck.Deck{}, nil); err == nil {
		t.Fatal("expected error for deck without heroes")
	}
}
