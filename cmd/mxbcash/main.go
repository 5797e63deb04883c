// Package main is the entry point for the mxbcash ledger server CLI.
package main

import (
	"os"

	"github.com/mxbcash/mxbcash/cmd/mxbcash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
