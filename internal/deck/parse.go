package deck

import (
	"fmt"
	"strconv"
	"strings"
)

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ParseIDs parses a list of card IDs separated by spaces or commas.
func ParseIDs(s string) ([]CardID, error) {
	var ids []CardID
	for _, f := range fields(s) {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q", f)
		}
		ids = append(ids, CardID(n))
	}
	return ids, nil
}

// ParseCards parses "id:count" items separated by spaces or commas, e.g.
// "56420:1 56411:2". A bare id counts as one copy and repeated ids are
// merged.
func ParseCards(s string) ([]Card, error) {
	var d Deck
	for _, f := range fields(s) {
		idText, countText, hasCount := strings.Cut(f, ":")
		id, err := strconv.ParseUint(idText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid card id in %q", f)
		}
		count := uint64(1)
		if hasCount {
			count, err = strconv.ParseUint(countText, 10, 64)
			if err != nil || count == 0 {
				return nil, fmt.Errorf("invalid card count in %q", f)
			}
		}
		d.Add(CardID(id), count)
	}
	return d.Cards, nil
}
