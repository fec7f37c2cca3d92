package pagetext

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/deckstring"
)

// DefaultName is used as the title of decks without a name.
const DefaultName = "Deck"

const footer = "To use this deck, copy it to your clipboard and create a new deck in Hearthstone"

// CardInfo is the card database data needed to render a card line.
type CardInfo struct {
	Name string `yaml:"name" json:"name"`
	Cost int    `yaml:"cost" json:"cost"`
}

// Catalog looks up card names and costs. A nil Catalog is allowed.
type Catalog interface {
	Lookup(id deck.CardID) (CardInfo, bool)
}

type renderedCard struct {
	count uint64
	known bool
	info  CardInfo
	id    deck.CardID
}

// titleFolder keeps a deck name on its title line.
var titleFolder = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Render writes d as page text. Cards are listed by cost, then name; cards
// missing from cat are listed last as "Card <id>".
func Render(d deck.Deck, cat Catalog) (string, error) {
	code, err := deckstring.Encode(d)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(titleFolder.Replace(d.Name))
	if name == "" {
		name = DefaultName
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", TitleMarker, name)
	fmt.Fprintf(&sb, "# Class: %s\n", lookupName(cat, d.Heroes[0], "Hero"))
	fmt.Fprintf(&sb, "# Format: %s\n", d.Format)
	sb.WriteString("#\n")

	cards := make([]renderedCard, 0, len(d.Cards))
	for _, c := range d.Cards {
		rc := renderedCard{count: c.Count, id: c.ID}
		if cat != nil {
			rc.info, rc.known = cat.Lookup(c.ID)
		}
		cards = append(cards, rc)
	}
	slices.SortFunc(cards, func(a, b renderedCard) int {
		if a.known != b.known {
			if a.known {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(a.info.Cost, b.info.Cost),
			cmp.Compare(a.info.Name, b.info.Name),
			cmp.Compare(a.id, b.id),
		)
	})
	for _, c := range cards {
		if c.known {
			fmt.Fprintf(&sb, "# %dx (%d) %s\n", c.count, c.info.Cost, c.info.Name)
		} else {
			fmt.Fprintf(&sb, "# %dx (?) Card %d\n", c.count, c.id)
		}
	}

	sb.WriteString("#\n")
	sb.WriteString(code)
	sb.WriteString("\n#\n")
	fmt.Fprintf(&sb, "# %s\n", footer)
	return sb.String(), nil
}

func lookupName(cat Catalog, id deck.CardID, fallback string) string {
	if cat != nil {
		if info, ok := cat.Lookup(id); ok {
			return info.Name
		}
	}
	return fmt.Sprintf("%s %d", fallback, id)
}
