// Package main is the entry point for the eightball appliance CLI.
//
// Usage:
//
//	eightball [flags] <command> [args]
//
// Commands:
//
//	run      - Run the appliance in the terminal
//	catalog  - Manage the response catalog (init, show)
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/pocket8/eightball/cmd/eightball/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
