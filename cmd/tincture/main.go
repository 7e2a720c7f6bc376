// Tincture - an accessible colour palette generator
//
// Tincture derives primary shades, backgrounds, text and status colours from a
// single seed colour, keeping every pairing above its WCAG contrast ratio.
package main

import (
	"os"

	"github.com/jmylchreest/tincture/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
