// Package main provides the CLI entry point for sqlfmt-lint.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlfmt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
