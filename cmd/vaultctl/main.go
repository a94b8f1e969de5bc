package main

import (
	"os"

	"github.com/opd-ai/keyvault/cmd/vaultctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
