package theme

import (
	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

// Pair is a light-mode and a dark-mode colour for the same role.
type Pair struct {
	Light catalog.Sample `json:"light"`
	Dark  catalog.Sample `json:"dark"`
}

// Support holds the status colours.
type Support struct {
	Info    catalog.Sample `json:"info"`
	Success catalog.Sample `json:"success"`
	Danger  catalog.Sample `json:"danger"`
	Warning catalog.Sample `json:"warning"`
}

// Palette is the full result of Generate. It is owned by the caller.
type Palette struct {
	Seed          colour.RGB        `json:"seed"`
	PrimaryShades [3]catalog.Sample `json:"primary_shades"`
	Secondary     catalog.Sample    `json:"secondary"`
	Background    Pair              `json:"background"`
	Text          Pair              `json:"text"`
	Support       Support           `json:"support"`
	Warnings      []Warning         `json:"warnings,omitempty"`
}

// Role is a named colour in a palette, in presentation order.
type Role struct {
	Name   string
	Sample catalog.Sample
}

// Roles flattens the palette into named colours, light mode first.
func (p *Palette) Roles() []Role {
	return []Role{
		{"primary-0", p.PrimaryShades[0]},
		{"primary-1", p.PrimaryShades[1]},
		{"primary-2", p.PrimaryShades[2]},
		{"secondary", p.Secondary},
		{"background", p.Background.Light},
		{"text", p.Text.Light},
		{"background-dark", p.Background.Dark},
		{"text-dark", p.Text.Dark},
		{"info", p.Support.Info},
		{"success", p.Support.Success},
		{"danger", p.Support.Danger},
		{"warning", p.Support.Warning},
	}
}

// HasWarning reports whether the palette carries a warning of kind.
func (p *Palette) HasWarning(kind WarningKind) bool {
	for _, w := range p.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
