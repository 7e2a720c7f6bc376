package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/output"
)

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	var location string

	templateLoader := func(cmd *cobra.Command) (*output.Loader, error) {
		dir := location
		if dir == "" {
			dir = output.DefaultTemplateDir()
		}
		dir, err := expandHome(dir)
		if err != nil {
			return nil, err
		}
		return output.NewLoader(dir, root.logger(cmd.ErrOrStderr())), nil
	}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output templates",
		Long: `Manage the templates used by the css and scss output formats.

Templates can be customised by dumping them to ~/.config/tincture/templates/
and editing them. Custom templates are used instead of the embedded ones.

Examples:
  tincture templates list
  tincture templates dump palette.css.tmpl
  tincture templates dump --force -l ./templates`,
	}
	cmd.PersistentFlags().StringVarP(&location, "location", "l", "", "template directory (default: ~/.config/tincture/templates)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := templateLoader(cmd)
			if err != nil {
				return err
			}
			names, err := loader.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			hasCustom := false
			fmt.Fprintln(out, "Available templates:")
			for _, name := range names {
				if loader.HasCustom(name) {
					fmt.Fprintf(out, "  - %s*\n", name)
					hasCustom = true
				} else {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}
			if hasCustom {
				fmt.Fprintln(out, "\nTemplates with active overrides are shown with an asterisk (*).")
			}
			return nil
		},
	}

	var force bool
	dumpCmd := &cobra.Command{
		Use:   "dump [template...]",
		Short: "Copy embedded templates into the template directory",
		Long: `Copy embedded templates into the template directory so they can be edited.
All templates are dumped when none are named. Existing files are kept unless
--force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := templateLoader(cmd)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				if names, err = loader.List(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			dumped, skipped := 0, 0
			for _, name := range names {
				path, err := loader.DumpTemplate(name, force)
				switch {
				case errors.Is(err, output.ErrTemplateExists):
					fmt.Fprintf(out, "  skipped %s (exists)\n", path)
					skipped++
				case err != nil:
					return err
				default:
					fmt.Fprintf(out, "  wrote %s\n", path)
					dumped++
				}
			}

			fmt.Fprintf(out, "Dumped %d template(s)", dumped)
			if skipped > 0 {
				fmt.Fprintf(out, ", skipped %d existing (use --force to overwrite)", skipped)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	dumpCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}
