package library

import (
	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/pagetext"
)

// Catalog maps card IDs to their display data.
type Catalog map[deck.CardID]pagetext.CardInfo

// Lookup implements pagetext.Catalog.
func (c Catalog) Lookup(id deck.CardID) (pagetext.CardInfo, bool) {
	info, ok := c[id]
	return info, ok
}
