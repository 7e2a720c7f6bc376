// Package catalog provides the luminance-sorted colour catalog searched when building palettes,
// together with the bucket index and range queries used to seek into it.
package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jmylchreest/tincture/internal/colour"
)

// Sample is a catalog entry: an sRGB colour annotated with its relative luminance and HSL.
// Saturation and lightness are unit fractions, hue is in degrees.
type Sample struct {
	RGB        colour.RGB `json:"rgb"`
	Luminance  float64    `json:"luminance"`
	Hue        float64    `json:"hue"`
	Saturation float64    `json:"saturation"`
	Lightness  float64    `json:"lightness"`
}

// NewSample computes the luminance and HSL annotations for rgb.
func NewSample(rgb colour.RGB) Sample {
	h, s, l := colour.RGBToHSL(rgb)
	return Sample{
		RGB:        rgb,
		Luminance:  colour.RelativeLuminance(rgb),
		Hue:        h,
		Saturation: s,
		Lightness:  l,
	}
}

// Step is the per-channel stride (red, green, blue) used to sweep the RGB cube.
// Strides that do not divide 255 stop short of the channel maximum.
type Step [3]int

// String returns the step as "r,g,b".
func (s Step) String() string {
	return fmt.Sprintf("%d,%d,%d", s[0], s[1], s[2])
}

// Validate checks that every stride is within 1-255.
func (s Step) Validate() error {
	for i, v := range s {
		if v < 1 || v > 255 {
			return fmt.Errorf("rgb step %d must be between 1 and 255, got %d", i, v)
		}
	}
	return nil
}

// Catalog is an immutable, luminance-ascending list of samples.
type Catalog struct {
	samples     []Sample
	step        Step
	minContrast float64
}

// Build sweeps the RGB grid defined by step and keeps every colour that can anchor at
// least one partner (darker or lighter) reaching minContrast. The result is sorted by
// luminance with ties kept in sweep order, so identical inputs give identical catalogs.
func Build(step Step, minContrast float64) (*Catalog, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}
	if minContrast < 1 {
		return nil, fmt.Errorf("minimum contrast ratio must be at least 1, got %g", minContrast)
	}

	samples := make([]Sample, 0, gridSize(step))
	for r := 0; r <= 255; r += step[0] {
		for g := 0; g <= 255; g += step[1] {
			for b := 0; b <= 255; b += step[2] {
				rgb := colour.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				lum := colour.RelativeLuminance(rgb)

				if !colour.IsValidLuminance(colour.DarkerLuminanceFor(minContrast, lum)) &&
					!colour.IsValidLuminance(colour.LighterLuminanceFor(minContrast, lum)) {
					continue
				}

				samples = append(samples, NewSample(rgb))
			}
		}
	}

	slices.SortStableFunc(samples, func(a, b Sample) int {
		return cmp.Compare(a.Luminance, b.Luminance)
	})

	return &Catalog{
		samples:     samples,
		step:        step,
		minContrast: minContrast,
	}, nil
}

func gridSize(step Step) int {
	return (255/step[0] + 1) * (255/step[1] + 1) * (255/step[2] + 1)
}

// Len returns the number of samples in the catalog.
func (c *Catalog) Len() int {
	return len(c.samples)
}

// At returns the sample at position i.
func (c *Catalog) At(i int) Sample {
	return c.samples[i]
}

// Samples returns the catalog contents. The slice is shared and must not be modified.
func (c *Catalog) Samples() []Sample {
	return c.samples[:len(c.samples):len(c.samples)]
}

// All returns an iterator over the catalog in luminance order.
func (c *Catalog) All() func(func(int, Sample) bool) {
	return func(yield func(int, Sample) bool) {
		for i, s := range c.samples {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Step returns the stride the catalog was built with.
func (c *Catalog) Step() Step {
	return c.step
}

// MinContrastRatio returns the contrast ratio used to filter the catalog.
func (c *Catalog) MinContrastRatio() float64 {
	return c.minContrast
}

// MinLuminance returns the lowest luminance in the catalog, or 0 when empty.
func (c *Catalog) MinLuminance() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return c.samples[0].Luminance
}

// MaxLuminance returns the highest luminance in the catalog, or 0 when empty.
func (c *Catalog) MaxLuminance() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return c.samples[len(c.samples)-1].Luminance
}
