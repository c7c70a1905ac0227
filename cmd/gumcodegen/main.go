// Package main provides the CLI for the gumcodegen code generator.
package main

import (
	"os"

	"github.com/leapstack-labs/gumcodegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
