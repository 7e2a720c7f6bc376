// Package cli provides the command-line interface for Tincture.
package cli

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/version"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// logger builds the command logger. Warnings are shown by default, --verbose adds
// debug output and --quiet silences everything.
func (o *rootOptions) logger(w io.Writer) hclog.Logger {
	level := hclog.Warn
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Off
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "tincture",
		Level:  level,
		Output: w,
	})
}

// NewRootCmd builds the tincture command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tincture",
		Short: "An accessible colour palette generator",
		Long: `Tincture derives an accessible colour palette from a single seed colour.

Every colour is picked from a luminance-sorted catalog of sRGB colours so that
the primary shades, backgrounds and text meet their WCAG contrast ratios. The
seed can be given as a hex colour or taken from the dominant colour of an image.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newShadesCmd(opts))
	rootCmd.AddCommand(newCatalogCmd(opts))
	rootCmd.AddCommand(newTemplatesCmd(opts))

	return rootCmd
}
