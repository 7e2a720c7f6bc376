// Package output renders generated palettes as text tables, JSON, CSS custom properties
// or SCSS variables.
package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/theme"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSS  Format = "css"
	FormatSCSS Format = "scss"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatCSS, FormatSCSS}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of text, json, css, scss)", s)
}

// templateName returns the template file used by a templated format.
func (f Format) templateName() string {
	return "palette." + string(f) + ".tmpl"
}

// Var is a named palette colour exposed to templates.
type Var struct {
	Name   string
	Sample catalog.Sample
}

// TemplateData is the value templates are executed against.
type TemplateData struct {
	Seed     string
	Light    []Var
	Dark     []Var
	Warnings []theme.Warning
}

// NewTemplateData flattens p into light-scheme and dark-scheme variables.
func NewTemplateData(p *theme.Palette) TemplateData {
	return TemplateData{
		Seed: p.Seed.Hex(),
		Light: []Var{
			{"primary-0", p.PrimaryShades[0]},
			{"primary-1", p.PrimaryShades[1]},
			{"primary-2", p.PrimaryShades[2]},
			{"secondary", p.Secondary},
			{"background-color", p.Background.Light},
			{"text-color", p.Text.Light},
			{"info", p.Support.Info},
			{"success", p.Support.Success},
			{"danger", p.Support.Danger},
			{"warning", p.Support.Warning},
		},
		Dark: []Var{
			{"background-color", p.Background.Dark},
			{"text-color", p.Text.Dark},
		},
		Warnings: p.Warnings,
	}
}

// TemplateFuncs returns the functions available to palette templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"hex": func(v Var) string { return v.Sample.RGB.Hex() },
		"rgb": func(v Var) string {
			c := v.Sample.RGB
			return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
		},
		"luminance": func(v Var) string { return fmt.Sprintf("%.4f", v.Sample.Luminance) },
	}
}

// Renderer writes palettes in any supported format.
type Renderer struct {
	loader  *Loader
	preview bool
}

// NewRenderer creates a renderer. preview enables ANSI swatches in text output.
func NewRenderer(loader *Loader, preview bool) *Renderer {
	if loader == nil {
		loader = NewLoader("", nil)
	}
	return &Renderer{loader: loader, preview: preview}
}

// Render writes p to w in format.
func (r *Renderer) Render(w io.Writer, p *theme.Palette, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, r.renderText(p))
		return err
	case FormatJSON:
		return renderJSON(w, p)
	case FormatCSS, FormatSCSS:
		return r.renderTemplate(w, p, format)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (r *Renderer) renderTemplate(w io.Writer, p *theme.Palette, format Format) error {
	content, _, err := r.loader.Load(format.templateName())
	if err != nil {
		return err
	}

	tmpl, err := template.New(string(format)).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", format, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewTemplateData(p)); err != nil {
		return fmt.Errorf("failed to execute %s template: %w", format, err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

type jsonColour struct {
	Hex        string  `json:"hex"`
	RGB        [3]int  `json:"rgb"`
	Luminance  float64 `json:"luminance"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

type jsonPalette struct {
	Seed     string                `json:"seed"`
	Colours  map[string]jsonColour `json:"colours"`
	Order    []string              `json:"order"`
	Warnings []theme.Warning       `json:"warnings,omitempty"`
}

func newJSONColour(s catalog.Sample) jsonColour {
	return jsonColour{
		Hex:        s.RGB.Hex(),
		RGB:        [3]int{int(s.RGB.R), int(s.RGB.G), int(s.RGB.B)},
		Luminance:  s.Luminance,
		Hue:        s.Hue,
		Saturation: s.Saturation,
		Lightness:  s.Lightness,
	}
}

func renderJSON(w io.Writer, p *theme.Palette) error {
	doc := jsonPalette{
		Seed:     p.Seed.Hex(),
		Colours:  make(map[string]jsonColour),
		Warnings: p.Warnings,
	}
	for _, role := range p.Roles() {
		doc.Colours[role.Name] = newJSONColour(role.Sample)
		doc.Order = append(doc.Order, role.Name)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	return nil
}
