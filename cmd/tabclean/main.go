// Package main is the entry point for the tabclean CLI.
package main

import (
	"os"

	"github.com/jmylchreest/tabclean/cmd/tabclean/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
