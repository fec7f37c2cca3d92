package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/peterkuimelis/hsdeck/internal/log"
	"github.com/peterkuimelis/hsdeck/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	decksFile := flag.String("decks", "decks.yaml", "path to decks YAML file")
	flag.Parse()

	srv, err := web.NewServer(*decksFile, log.NewTextLogger(os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	stdlog.Printf("hsdeck web API listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
