package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/image"
	"github.com/jmylchreest/tincture/internal/output"
	"github.com/jmylchreest/tincture/internal/theme"
)

type generateOptions struct {
	fromImage   string
	clusters    int
	format      string
	output      string
	preview     bool
	templateDir string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cf := newConfigFlags()

	cmd := &cobra.Command{
		Use:   "generate [seed]",
		Short: "Generate a palette from a seed colour",
		Long: `Generate an accessible palette from a seed colour.

The seed is a hex colour (#rgb or #rrggbb) or, with --from-image, the dominant
colour of an image. A directory picks a random image inside it, and http(s)
URLs are downloaded once into the user cache directory.

Configuration is layered: built-in defaults, then the --config file, then
TINCTURE_* environment variables, then flags.

Examples:
  # Print the palette as a table
  tincture generate '#f3c814'

  # CSS custom properties with a dark colour scheme block
  tincture generate '#3a6ea5' --format css -o palette.css

  # Seed from a wallpaper
  tincture generate --from-image ~/Pictures/wallpaper.jpg --format json

  # Coarser catalog, stricter shade contrast
  tincture generate '#808080' --step 17 --shade-contrast 3.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, root, opts, cf)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.fromImage, "from-image", "i", "", "take the seed from the dominant colour of an image file, directory or URL")
	flags.IntVar(&opts.clusters, "clusters", image.DefaultClusters, "number of k-means clusters used with --from-image")
	flags.StringVarP(&opts.format, "format", "f", string(output.FormatText), "output format (text, json, css, scss)")
	flags.StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches in text output (default: when stdout is a terminal)")
	flags.StringVar(&opts.templateDir, "template-dir", "", "directory with custom templates (default: ~/.config/tincture/templates)")

	cf.registerCatalog(flags)
	cf.registerSearch(flags)

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, root *rootOptions, opts *generateOptions, cf *configFlags) error {
	logger := root.logger(cmd.ErrOrStderr())

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(cmd.Context(), args, opts, logger)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(root, cf, cmd.Flags())
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return err
	}

	palette, err := gen.Generate(seed)
	if err != nil {
		return fmt.Errorf("failed to generate palette for %s: %w", seed.Hex(), err)
	}
	for _, w := range palette.Warnings {
		logger.Warn("palette warning", "kind", w.Kind, "role", w.Role, "message", w.Message)
	}

	templateDir := opts.templateDir
	if templateDir == "" {
		templateDir = output.DefaultTemplateDir()
	}
	loader := output.NewLoader(templateDir, logger)

	if opts.output == "" {
		w := cmd.OutOrStdout()
		preview := opts.preview
		if !cmd.Flags().Changed("preview") {
			preview = isTerminal(w)
		}
		return output.NewRenderer(loader, preview).Render(w, palette, format)
	}

	renderer := output.NewRenderer(loader, opts.preview)
	err = writeFile(opts.output, createFile, func(w io.Writer) error {
		return renderer.Render(w, palette, format)
	})
	if err != nil {
		return err
	}

	logger.Info("wrote palette", "path", opts.output, "format", format)
	return nil
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path) // #nosec G304 - user-chosen output path
}

// writeFile renders into the file at path. A failed Close is reported, since buffered
// write errors only surface there.
func writeFile(path string, create func(string) (io.WriteCloser, error), render func(io.Writer) error) error {
	f, err := create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// resolveSeed returns the seed colour from the positional argument or --from-image.
func resolveSeed(ctx context.Context, args []string, opts *generateOptions, logger hclog.Logger) (colour.RGB, error) {
	switch {
	case len(args) == 1 && opts.fromImage != "":
		return colour.RGB{}, errors.New("give either a seed colour or --from-image, not both")

	case len(args) == 1:
		seed, err := colour.ParseHex(args[0])
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid seed colour: %w", err)
		}
		return seed, nil

	case opts.fromImage != "":
		loader := &image.FileLoader{Remote: &image.RemoteFetcher{Logger: logger}}
		img, err := loader.LoadContext(ctx, opts.fromImage)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("failed to load image: %w", err)
		}
		seed, err := image.SeedColour(img, opts.clusters)
		if err != nil {
			return colour.RGB{}, err
		}
		logger.Debug("seed from image", "path", opts.fromImage, "seed", seed.Hex())
		return seed, nil

	default:
		return colour.RGB{}, errors.New("a seed colour or --from-image is required")
	}
}

func newGenerator(cfg theme.Config, logger hclog.Logger) (*theme.Generator, error) {
	cache, err := catalog.NewCache(1, logger)
	if err != nil {
		return nil, err
	}
	return theme.NewGenerator(cfg, cache, logger)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
