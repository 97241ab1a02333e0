// Package main provides the kgprune command.
package main

import (
	"os"

	"github.com/leapstack-labs/kgprune/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
