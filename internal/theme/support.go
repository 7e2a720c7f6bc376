package theme

import (
	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

// HueRange is an inclusive hue interval in degrees. Start > End wraps through 0°.
type HueRange struct {
	Start, End float64
}

// Contains reports whether hue lies in the range.
func (r HueRange) Contains(hue float64) bool {
	hue = colour.NormaliseHue(hue)
	if r.Start <= r.End {
		return hue >= r.Start && hue <= r.End
	}
	return hue >= r.Start || hue <= r.End
}

// Hue ranges for the support colours.
var (
	InfoHues    = HueRange{Start: 175, End: 201}
	SuccessHues = HueRange{Start: 80, End: 139}
	DangerHues  = HueRange{Start: 340, End: 10}
	WarningHues = HueRange{Start: 24, End: 47}
)

const (
	supportMinSaturation = 0.4
	supportMaxSaturation = 1.0
	supportMinLightness  = 0.2
	supportMaxLightness  = 0.7

	fallbackSaturation = 0.5
	fallbackLightness  = 0.6
)

// supportColours picks, for every support hue range, the catalog colour with the strongest
// contrast against background, limited to moderately saturated mid-lightness colours.
// All four ranges are filled in one pass over the catalog. Ties keep the darker colour.
func (g *Generator) supportColours(background catalog.Sample) Support {
	ranges := [...]HueRange{InfoHues, SuccessHues, DangerHues, WarningHues}
	var best [len(ranges)]catalog.Sample
	var bestRatio [len(ranges)]float64

	for _, s := range g.index.Catalog().All() {
		if s.Saturation < supportMinSaturation || s.Saturation > supportMaxSaturation ||
			s.Lightness < supportMinLightness || s.Lightness > supportMaxLightness {
			continue
		}

		ratio := colour.ContrastRatio(s.Luminance, background.Luminance)
		for i, hues := range ranges {
			if ratio > bestRatio[i] && hues.Contains(s.Hue) {
				best[i], bestRatio[i] = s, ratio
			}
		}
	}

	for i, hues := range ranges {
		if bestRatio[i] == 0 {
			g.logger.Debug("no catalog colour for support hue range, using fallback", "start", hues.Start, "end", hues.End)
			best[i] = catalog.NewSample(colour.HSLToRGB(hues.End, fallbackSaturation, fallbackLightness))
		}
	}

	return Support{Info: best[0], Success: best[1], Danger: best[2], Warning: best[3]}
}
