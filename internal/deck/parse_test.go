package deck

import (
	"slices"
	"testing"
)

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("56420:1, 56411:2 10 10:2\t99:3")
	if err != nil {
		t.Fatalf("ParseCards: %v", err)
	}
	want := []Card{{56420, 1}, {56411, 2}, {10, 3}, {99, 3}}
	if !slices.Equal(cards, want) {
		t.Errorf("got %v, want %v", cards, want)
	}

	for _, bad := range []string{"x:1", "1:0", "1:y", "-3"} {
		if _, err := ParseCards(bad); err == nil {
			t.Errorf("ParseCards(%q): expected error", bad)
		}
	}

	if cards, err := ParseCards("  "); err != nil || cards != nil {
		t.Errorf("empty input: %v, %v", cards, err)
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("64850, 7")
	if err != nil || !slices.Equal(ids, []CardID{64850, 7}) {
		t.Errorf("got %v, %v", ids, err)
	}
	if _, err := ParseIDs("7 hero"); err == nil {
		t.Error("expected error")
	}
}
