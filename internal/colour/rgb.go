package colour

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Color converts the value to an opaque color.RGBA.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// FromColor converts a color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
// Alpha is accepted and ignored.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3, 6:
	case 4, 8:
		hex = hex[:len(hex)*3/4]
	default:
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 3, 4, 6 or 8 digits", s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
