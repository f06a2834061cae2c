package main

import (
	"os"

	"github.com/eduvox/backend/gateways/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
