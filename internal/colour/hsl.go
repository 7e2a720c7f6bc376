package colour

import "math"

// RGBToHSL converts RGB to HSL colour space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func RGBToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	h *= 60
	if h >= 360 {
		h -= 360
	}
	return h, s, l
}

// HSLToRGB converts HSL to RGB colour space, rounding each channel to the nearest integer.
// h is hue in degrees (wrapped into 0-360), s is saturation (0-1), l is lightness (0-1).
func HSLToRGB(h, s, l float64) RGB {
	s = clampUnit(s)
	l = clampUnit(l)

	if s == 0 {
		// Achromatic (grey).
		v := toChannel(l)
		return RGB{R: v, G: v, B: v}
	}

	h = NormaliseHue(h)
	chroma := (1 - math.Abs(2*l-1)) * s
	sector := h / 60
	x := chroma * (1 - math.Abs(math.Mod(sector, 2)-1))
	m := l - chroma/2

	var r, g, b float64
	switch {
	case sector < 1:
		r, g, b = chroma, x, 0
	case sector < 2:
		r, g, b = x, chroma, 0
	case sector < 3:
		r, g, b = 0, chroma, x
	case sector < 4:
		r, g, b = 0, x, chroma
	case sector < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	return RGB{
		R: toChannel(r + m),
		G: toChannel(g + m),
		B: toChannel(b + m),
	}
}

func toChannel(v float64) uint8 {
	return uint8(math.Round(clampUnit(v) * 255))
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
