package main

import (
	"os"

	"github.com/databanq/dqscore/cmd/dqscore/commands"
)

// main is the entry point for the dqscore CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
