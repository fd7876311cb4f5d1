// Swatch - colour palette analysis and harmony generator
//
// Swatch extracts a ranked, percentage-weighted colour palette from an
// image, flags colour-vision accessibility and generates colour harmonies.
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
