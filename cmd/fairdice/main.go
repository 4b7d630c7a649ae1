package main

import (
	"os"

	"github.com/mwetzel/fairdice/cmd/fairdice/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
