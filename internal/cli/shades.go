package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/output"
)

func newShadesCmd(root *rootOptions) *cobra.Command {
	var preview bool
	cf := newConfigFlags()

	cmd := &cobra.Command{
		Use:   "shades <seed>",
		Short: "Show the primary shade ramp for a seed colour",
		Long: `Show the three primary shades for a seed colour, darkest first.

Neighbouring shades are at least --shade-contrast apart. The seed is kept in the
middle when it can be, otherwise it becomes the darkest or lightest shade. Seeds
whose ramp cannot fit are anchored at the end of the catalog and reported with
a seed_adjusted warning.

Examples:
  tincture shades '#f3c814'
  tincture shades '#505050' --shade-contrast 4 --strict-hue=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())

			seed, err := colour.ParseHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid seed colour: %w", err)
			}

			cfg, err := resolveConfig(root, cf, cmd.Flags())
			if err != nil {
				return err
			}

			gen, err := newGenerator(cfg, logger)
			if err != nil {
				return err
			}

			shades, err := gen.Shades(seed, cfg.ShadeContrastRatio)
			if err != nil {
				return fmt.Errorf("failed to generate shades for %s: %w", seed.Hex(), err)
			}

			show := preview
			if !cmd.Flags().Changed("preview") {
				show = isTerminal(cmd.OutOrStdout())
			}

			headers := []string{"Slot", "Hex", "Luminance", "Contrast", "Note"}
			if show {
				headers = append(headers, "Preview")
			}
			t := output.NewTable(headers...)
			t.AlignRight(2)
			t.AlignRight(3)

			for i, s := range shades.Samples {
				ratio := "-"
				if i > 0 {
					ratio = fmt.Sprintf("%.2f:1", colour.ContrastRatio(s.Luminance, shades.Samples[i-1].Luminance))
				}
				note := ""
				if i == shades.Anchor {
					note = "seed"
				}
				cells := []string{fmt.Sprintf("%d", i), s.RGB.Hex(), fmt.Sprintf("%.4f", s.Luminance), ratio, note}
				if show {
					cells = append(cells, colour.ColourPreview(s.RGB, 10))
				}
				t.AddRow(cells...)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Seed: %s  Ratio: %g  Ramp: %s\n\n", seed.Hex(), cfg.ShadeContrastRatio, shades.Case)
			b.WriteString(t.Render())
			for _, w := range shades.Warnings {
				fmt.Fprintf(&b, "warning: %s\n", w)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "show colour swatches (default: when stdout is a terminal)")
	cf.registerCatalog(cmd.Flags())
	cf.registerSearch(cmd.Flags())

	return cmd
}
