package commands

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var decksFile string

// Execute runs the hsdeck root command with the process arguments.
func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "hsdeck",
		Short:        "Encode, decode and share Hearthstone deck strings",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&decksFile, "decks", "decks.yaml", "path to decks YAML file")

	root.AddCommand(decodeCmd(), encodeCmd(), nameCmd(), pageCmd(), decksCmd(), serveCmd(), connectCmd())
	return root
}

// argOrStdin returns args[0], or all of stdin when no argument was given.
func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readText returns the contents of path, or of stdin when path is "" or "-".
func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		return argOrStdin(cmd, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
