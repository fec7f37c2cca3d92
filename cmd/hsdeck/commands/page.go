package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/hsdeck/internal/deckstring"
	"github.com/peterkuimelis/hsdeck/internal/library"
	"github.com/peterkuimelis/hsdeck/internal/pagetext"
)

func nameCmd() *cobra.Command {
	var capacity int
	cmd := &cobra.Command{
		Use:   "name [file]",
		Short: "Print the deck name of a page (reads stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			text, err := readText(cmd, path)
			if err != nil {
				return err
			}
			name := pagetext.Name(text)
			if capacity > 0 {
				buf := make([]byte, capacity)
				name = string(buf[:pagetext.ReadName(text, buf)])
			}
			code, _ := pagetext.DeckString(text)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", name, code)
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 0, "name buffer size in bytes (0 for no limit)")
	return cmd
}

func pageCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "page [deckstring]",
		Short: "Render a deck string as shareable page text",
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
			d.Name = name

			var cat pagetext.Catalog
			if f, err := library.ReadFile(decksFile); err == nil {
				cat = f.Catalog()
			}
			text, err := pagetext.Render(d, cat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "deck name for the title line")
	return cmd
}
