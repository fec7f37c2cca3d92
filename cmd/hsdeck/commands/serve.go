package commands

import (
	stdlog "log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/hsdeck/internal/library"
	"github.com/peterkuimelis/hsdeck/internal/log"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a deck server speaking line-delimited JSON over TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := log.NewTextLogger(os.Stderr)
			h := &decknet.Handler{Source: "tcp", Logger: logger}
			if f, err := library.ReadFile(decksFile); err != nil {
				stdlog.Printf("Warning: no card catalog: %v", err)
			} else {
				h.Catalog = f.Catalog()
				logger.Log(log.NewLibraryLoadEvent("tcp", decksFile, len(f.Decks)))
			}

			srv := &decknet.Server{Addr: addr, Handler: h}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9000", "TCP address to listen on")
	return cmd
}

func connectCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a deck server and decode deck strings or pages typed on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return decknet.Connect(ctx, addr, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:9000", "server address to connect to")
	return cmd
}
