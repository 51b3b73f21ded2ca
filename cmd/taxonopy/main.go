package main

import (
	"os"

	"github.com/dataonlygreater/taxonopy/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
