package output

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/theme"
)

const previewWidth = 10

func (r *Renderer) renderText(p *theme.Palette) string {
	headers := []string{"Role", "Hex", "RGB", "Luminance", "Contrast"}
	if r.preview {
		headers = append(headers, "Preview")
	}
	t := NewTable(headers...)
	t.AlignRight(3)
	t.AlignRight(4)

	// Each role is measured against the colour it is meant to sit next to.
	rows := []struct {
		name     string
		sample   catalog.Sample
		against  catalog.Sample
		withText bool
	}{
		{"primary-0", p.PrimaryShades[0], p.PrimaryShades[1], false},
		{"primary-1", p.PrimaryShades[1], p.PrimaryShades[2], false},
		{"primary-2", p.PrimaryShades[2], p.PrimaryShades[1], false},
		{"secondary", p.Secondary, p.Background.Light, false},
		{"background", p.Background.Light, p.Text.Light, true},
		{"text", p.Text.Light, p.Background.Light, false},
		{"background-dark", p.Background.Dark, p.Text.Dark, true},
		{"text-dark", p.Text.Dark, p.Background.Dark, false},
		{"info", p.Support.Info, p.Background.Light, false},
		{"success", p.Support.Success, p.Background.Light, false},
		{"danger", p.Support.Danger, p.Background.Light, false},
		{"warning", p.Support.Warning, p.Background.Light, false},
	}

	for _, row := range rows {
		c := row.sample.RGB
		cells := []string{
			row.name,
			c.Hex(),
			fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B),
			fmt.Sprintf("%.4f", row.sample.Luminance),
			fmt.Sprintf("%.2f:1", colour.ContrastRatio(row.sample.Luminance, row.against.Luminance)),
		}
		if r.preview {
			if row.withText {
				cells = append(cells, colour.ColourPreviewWithText(c, row.against.RGB, "Aa", previewWidth))
			} else {
				cells = append(cells, colour.ColourPreview(c, previewWidth))
			}
		}
		t.AddRow(cells...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Seed: %s\n\n", p.Seed.Hex())
	b.WriteString(t.Render())

	if len(p.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range p.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	return b.String()
}
