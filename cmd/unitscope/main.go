// Package main is the entry point for the unitscope CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/unitscope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
