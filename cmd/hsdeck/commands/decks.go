package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/hsdeck/internal/deckstring"
	"github.com/peterkuimelis/hsdeck/internal/library"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
	"github.com/peterkuimelis/hsdeck/internal/pagetext"
)

func decksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List the decks in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := library.ReadFile(decksFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i := range f.Decks {
				d, err := f.Resolve(i)
				if err != nil {
					fmt.Fprintf(out, "%d. error: %v\n", i+1, err)
					continue
				}
				fmt.Fprintf(out, "%d. %s", i+1, decknet.FormatDeck(decknet.BuildDeckView(d)))
			}
			return nil
		},
	}
	cmd.AddCommand(decksShowCmd(), decksAddCmd())
	return cmd
}

func decksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show N",
		Short: "Print deck N as page text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid deck number %q", args[0])
			}
			f, err := library.ReadFile(decksFile)
			if err != nil {
				return err
			}
			d, err := f.Resolve(n - 1)
			if err != nil {
				return err
			}
			text, err := pagetext.Render(d, f.Catalog())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func decksAddCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add DECKSTRING",
		Short: "Add a deck string to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deckstring.Decode(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", deckstring.Kind(err), err)
			}
			d.Name = name

			f, err := library.ReadFile(decksFile)
			if errors.Is(err, fs.ErrNotExist) {
				f = &library.File{}
			} else if err != nil {
				return err
			}
			before := len(f.Decks)
			n, err := f.Add(d)
			if err != nil {
				return err
			}
			if n <= before {
				fmt.Fprintf(cmd.OutOrStdout(), "deck already in library as #%d\n", n)
				return nil
			}
			if err := f.Save(decksFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added deck #%d to %s\n", n, decksFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "deck name")
	return cmd
}
