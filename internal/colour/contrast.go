// Package colour provides colour math used by the palette search engine.
package colour

import "math"

// contrastOffset is the flare term added to both luminances in the WCAG contrast formula.
const contrastOffset = 0.05

// luminanceTolerance leaves room for floating point error at the top of the range.
const luminanceTolerance = 1.000001

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect linearises a single sRGB channel.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two luminances according to WCAG 2.0.
// The result is symmetric and ranges from 1 (identical) to 21 (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(lumA, lumB float64) float64 {
	if lumA < lumB {
		lumA, lumB = lumB, lumA
	}
	return (lumA + contrastOffset) / (lumB + contrastOffset)
}

// DarkerLuminanceFor returns the luminance x below lighter such that
// ContrastRatio(lighter, x) == ratio. The result may fall outside (0, 1];
// check it with IsValidLuminance before use.
func DarkerLuminanceFor(ratio, lighter float64) float64 {
	return ((lighter + contrastOffset) - ratio*contrastOffset) / ratio
}

// LighterLuminanceFor returns the luminance x above darker such that
// ContrastRatio(x, darker) == ratio. The result may exceed 1.
func LighterLuminanceFor(ratio, darker float64) float64 {
	return ratio*(darker+contrastOffset) - contrastOffset
}

// IsValidLuminance reports whether x is a luminance an sRGB colour can have.
// Zero is excluded because no ratio above 1 can be inverted onto it.
func IsValidLuminance(x float64) bool {
	return x > 0 && x < luminanceTolerance
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormaliseHue(h1) - NormaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// NormaliseHue wraps a hue in degrees into [0, 360).
func NormaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// RotateHue rotates a hue by the given number of degrees, wrapping at 360.
func RotateHue(h, degrees float64) float64 {
	return NormaliseHue(h + degrees)
}
