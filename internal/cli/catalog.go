package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/output"
	"github.com/jmylchreest/tincture/internal/theme"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var export, importPath string
	cf := newConfigFlags()

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build the colour catalog and show its statistics",
		Long: `Build the luminance-sorted colour catalog for the configured RGB step and
minimum contrast ratio, and print its statistics.

With --export the catalog is written as xz-compressed CSV (red, green, blue,
luminance, hue, saturation, lightness), one row per colour in luminance order.
--import reads such a file back instead of building the catalog; --step and
--min-contrast should match the values it was exported with.

Examples:
  tincture catalog
  tincture catalog --step 5,5,17 --export catalog.csv.xz
  tincture catalog --step 5,5,17 --import catalog.csv.xz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd.ErrOrStderr())

			cfg, err := resolveConfig(root, cf, cmd.Flags())
			if err != nil {
				return err
			}

			start := time.Now()
			ix, err := loadIndex(cfg, importPath, logger)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			cat := ix.Catalog()

			t := output.NewTable("Property", "Value")
			t.AddRow("RGB step", cat.Step().String())
			t.AddRow("Minimum contrast", fmt.Sprintf("%g:1", cat.MinContrastRatio()))
			t.AddRow("Colours", fmt.Sprintf("%d", cat.Len()))
			t.AddRow("Luminance range", fmt.Sprintf("%.6f - %.6f", cat.MinLuminance(), cat.MaxLuminance()))
			t.AddRow("Index buckets", fmt.Sprintf("%d x %g", ix.Buckets(), ix.BucketWidth()))
			t.AddRow("Build time", elapsed.Round(time.Millisecond).String())
			fmt.Fprint(cmd.OutOrStdout(), t.Render())

			if export == "" {
				return nil
			}

			if err := writeFile(export, createFile, cat.WriteXZ); err != nil {
				return fmt.Errorf("failed to export catalog: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nExported %d colours to %s\n", cat.Len(), export)
			return nil
		},
	}

	cmd.Flags().StringVarP(&export, "export", "e", "", "write the catalog as xz-compressed CSV")
	cmd.Flags().StringVar(&importPath, "import", "", "read the catalog from an exported xz-compressed CSV instead of building it")
	cmd.MarkFlagsMutuallyExclusive("export", "import")
	cf.registerCatalog(cmd.Flags())

	return cmd
}

// loadIndex builds the catalog for cfg, or reads it from an export when path is set.
func loadIndex(cfg theme.Config, path string, logger hclog.Logger) (*catalog.Index, error) {
	if path == "" {
		cache, err := catalog.NewCache(1, logger)
		if err != nil {
			return nil, err
		}
		return cache.Get(cfg.CatalogKey())
	}

	f, err := os.Open(path) // #nosec G304 - user-chosen catalog export
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	cat, err := catalog.ReadXZ(f, cfg.RGBStepSize, cfg.MinContrastRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to import catalog %s: %w", path, err)
	}
	logger.Debug("imported catalog", "path", path, "colours", cat.Len())

	return catalog.NewIndex(cat, cfg.LuminanceBucketWidth)
}
