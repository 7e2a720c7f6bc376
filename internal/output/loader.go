package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by DumpTemplate when a custom template would be overwritten.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader reads output templates, preferring files in a custom directory over the
// embedded defaults.
type Loader struct {
	embedded   fs.FS
	customBase string
	logger     hclog.Logger
}

// DefaultTemplateDir returns ~/.config/tincture/templates, or a relative path when the
// home directory is unknown.
func DefaultTemplateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "tincture", "templates")
	}
	return filepath.Join(home, ".config", "tincture", "templates")
}

// NewLoader creates a loader over the embedded templates with overrides read from customBase.
// An empty customBase disables overrides.
func NewLoader(customBase string, logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err) // templates/ is embedded at build time
	}
	return &Loader{
		embedded:   sub,
		customBase: customBase,
		logger:     logger.Named("templates"),
	}
}

// Load returns the template content and whether it came from the custom directory.
func (l *Loader) Load(name string) (content []byte, fromCustom bool, err error) {
	if l.customBase != "" {
		customPath := l.CustomPath(name)
		if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 - path under the template directory
			l.logger.Debug("using custom template", "path", customPath)
			return content, true, nil
		}
	}

	content, err = fs.ReadFile(l.embedded, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", name, err)
	}
	l.logger.Debug("using embedded template", "name", name)
	return content, false, nil
}

// CustomPath returns where a custom override for name would live.
func (l *Loader) CustomPath(name string) string {
	return filepath.Join(l.customBase, filepath.FromSlash(name))
}

// List returns the embedded template names.
func (l *Loader) List() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.embedded, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".tmpl" {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return names, nil
}

// HasCustom reports whether a custom override exists for name.
func (l *Loader) HasCustom(name string) bool {
	if l.customBase == "" {
		return false
	}
	_, err := os.Stat(l.CustomPath(name))
	return err == nil
}

// DumpTemplate copies an embedded template into the custom directory so it can be edited.
// Existing files are only replaced when force is set.
func (l *Loader) DumpTemplate(name string, force bool) (string, error) {
	if l.customBase == "" {
		return "", errors.New("no custom template directory configured")
	}

	content, err := fs.ReadFile(l.embedded, name)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", name, err)
	}

	outputPath := l.CustomPath(name)
	if !force && l.HasCustom(name) {
		return outputPath, fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, outputPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil { // #nosec G301 - user config directory
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil { // #nosec G306 - templates are not secret
		return "", fmt.Errorf("failed to write template: %w", err)
	}

	l.logger.Info("dumped template", "path", outputPath)
	return outputPath, nil
}
