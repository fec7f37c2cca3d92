package main

import (
	"os"

	"github.com/peterkuimelis/hsdeck/cmd/hsdeck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
