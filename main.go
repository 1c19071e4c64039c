// askdb – chat with your database through an AI agent.
//
// Entry point: initializes the Cobra root command, which launches
// the Bubble Tea chat UI by default (no subcommand required).
package main

import (
	"os"

	"github.com/DachengChen/askdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
