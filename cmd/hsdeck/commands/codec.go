package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/deckstring"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
)

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [deckstring]",
		Short: "Decode a deck string (reads stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}
			d, err := deckstring.Decode(firstLine(code))
			if err != nil {
				return fmt.Errorf("%s: %w", deckstring.Kind(err), err)
			}
			fmt.Fprint(cmd.OutOrStdout(), decknet.FormatDeck(decknet.BuildDeckView(d)))
			return nil
		},
	}
	return cmd
}

func encodeCmd() *cobra.Command {
	var heroes, cards, format, name string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a deck into a deck string",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeck(name, format, heroes, cards)
			if err != nil {
				return err
			}
			code, err := deckstring.Encode(d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	cmd.Flags().StringVar(&heroes, "heroes", "", "hero card IDs, e.g. 64850")
	cmd.Flags().StringVar(&cards, "cards", "", "cards as id:count items, e.g. '56420:1 56411:2'")
	cmd.Flags().StringVar(&format, "format", "Standard", "format name or number")
	cmd.Flags().StringVar(&name, "name", "", "deck name (not part of the deck string)")
	_ = cmd.MarkFlagRequired("heroes")
	_ = cmd.MarkFlagRequired("cards")
	return cmd
}

func buildDeck(name, format, heroes, cards string) (deck.Deck, error) {
	f, err := deck.ParseFormat(format)
	if err != nil {
		return deck.Deck{}, err
	}
	h, err := deck.ParseIDs(heroes)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("heroes: %w", err)
	}
	c, err := deck.ParseCards(cards)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("cards: %w", err)
	}
	return deck.Deck{Name: name, Format: f, Heroes: h, Cards: c}, nil
}
