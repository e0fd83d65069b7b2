package main

import (
	"os"

	"github.com/ngrash/go-temporal/cmd/temporal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
