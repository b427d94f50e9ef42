// Package main is the entry point for the cfy CLI.
package main

import (
	"os"

	"github.com/thoreinstein/cfy/cmd/cfy/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(commands.PrintError(os.Stderr, err))
	}
}
