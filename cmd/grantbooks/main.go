package main

import (
	"os"

	"github.com/grantbooks-dev/grantbooks/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
