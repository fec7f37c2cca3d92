package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/hsdeck/internal/log"
	hsmcp "github.com/peterkuimelis/hsdeck/internal/mcp"
)

func main() {
	decks := flag.String("decks", "decks.yaml", "path to decks YAML file")
	flag.Parse()

	// stdout carries the MCP protocol.
	hsmcp.SetLogger(log.NewTextLogger(os.Stderr))
	if err := hsmcp.SetDecksFile(*decks); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: deck library not loaded: %v\n", err)
	}

	s := server.NewMCPServer("hsdeck", "1.0.0")
	hsmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
