package main

import (
	"os"

	"offersheet-cli/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		// cobra already printed the error (SilenceUsage only silences help).
		os.Exit(1)
	}
}
