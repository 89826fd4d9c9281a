// Package main provides the entry point for the aadb server and CLI.
package main

import (
	"os"

	"github.com/aadb-project/aadb/cmd/aadb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
