// Package main is the entry point for the spectrum CLI binary.
package main

import (
	"os"

	cli "spectrum-sync/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
