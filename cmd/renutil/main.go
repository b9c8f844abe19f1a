package main

import (
	"os"

	"github.com/kobaltcore/renutil/internal/cli/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.GitCommit = commit
	commands.BuildDate = date

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
