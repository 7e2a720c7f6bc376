package theme

import (
	"math"
	"reflect"
	"testing"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

func TestGeneratePalette(t *testing.T) {
	g := newTestGenerator(t, nil)
	cfg := g.Config()

	seeds := []colour.RGB{
		{R: 243, G: 200, B: 20},
		{R: 200, G: 80, B: 80},
		{R: 40, G: 90, B: 200},
		{R: 9, G: 6, B: 40},
	}

	for _, seed := range seeds {
		t.Run(seed.Hex(), func(t *testing.T) {
			p, err := g.Generate(seed)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}

			if p.Seed != seed {
				t.Errorf("seed = %s", p.Seed.Hex())
			}
			if p.Text.Light != p.PrimaryShades[0] {
				t.Errorf("light text %s should be the darkest shade %s", p.Text.Light.RGB.Hex(), p.PrimaryShades[0].RGB.Hex())
			}

			for i := 1; i < 3; i++ {
				if p.PrimaryShades[i-1].Luminance >= p.PrimaryShades[i].Luminance {
					t.Errorf("primary shades not increasing at %d", i)
				}
			}

			if !p.HasWarning(WarningContrastRelaxed) {
				if got := colour.ContrastRatio(p.Background.Light.Luminance, p.Text.Light.Luminance); got < cfg.BackgroundContrastRatio {
					t.Errorf("light background contrast %.2f below %.2f", got, cfg.BackgroundContrastRatio)
				}
			}

			lum := p.Background.Dark.Luminance
			if lum <= cfg.DarkBackgroundLuminance-cfg.DarkBackgroundSearchRange || lum >= cfg.DarkBackgroundLuminance {
				t.Errorf("dark background luminance %f outside its band", lum)
			}
			if got := colour.ContrastRatio(p.Text.Dark.Luminance, p.Background.Dark.Luminance); got < cfg.DarkTextContrastRatio {
				t.Errorf("dark text contrast %.2f below %.2f", got, cfg.DarkTextContrastRatio)
			}

			if d := math.Abs(p.Secondary.Luminance - p.PrimaryShades[1].Luminance); d >= cfg.SecondarySearchRange {
				t.Errorf("secondary luminance %f too far from middle shade %f", p.Secondary.Luminance, p.PrimaryShades[1].Luminance)
			}

			support := map[string]struct {
				sample catalog.Sample
				hues   HueRange
			}{
				"info":    {p.Support.Info, InfoHues},
				"success": {p.Support.Success, SuccessHues},
				"danger":  {p.Support.Danger, DangerHues},
				"warning": {p.Support.Warning, WarningHues},
			}
			for name, s := range support {
				if !s.hues.Contains(s.sample.Hue) {
					t.Errorf("%s hue %.1f outside %v", name, s.sample.Hue, s.hues)
				}
				if s.sample.Saturation < supportMinSaturation || s.sample.Lightness < supportMinLightness || s.sample.Lightness > supportMaxLightness {
					t.Errorf("%s %s outside saturation/lightness limits", name, s.sample.RGB.Hex())
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := newTestGenerator(t, nil)
	seed := colour.RGB{R: 40, G: 90, B: 200}

	a, err := g.Generate(seed)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	b, err := g.Generate(seed)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("palettes differ between identical calls")
	}
}

func TestGenerateDarkTextRank(t *testing.T) {
	seed := colour.RGB{R: 200, G: 80, B: 80}

	best := newTestGenerator(t, func(c *Config) { c.DarkTextRank = 0 })
	second := newTestGenerator(t, nil)

	p0, err := best.Generate(seed)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	p1, err := second.Generate(seed)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// The default deliberately skips the top-ranked candidate.
	if p0.Text.Dark == p1.Text.Dark {
		t.Errorf("rank 0 and rank 1 both chose %s", p0.Text.Dark.RGB.Hex())
	}
	if p0.Background.Dark != p1.Background.Dark {
		t.Error("dark background should not depend on the text rank")
	}
}

func TestGenerateRankFallback(t *testing.T) {
	g := newTestGenerator(t, func(c *Config) { c.DarkTextRank = 1 << 20 })

	p, err := g.Generate(colour.RGB{R: 200, G: 80, B: 80})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !p.HasWarning(WarningRankFallback) {
		t.Errorf("expected rank fallback warning, got %v", p.Warnings)
	}
}

func TestGenerateRelaxesUnreachableBackground(t *testing.T) {
	g := newTestGenerator(t, func(c *Config) { c.BackgroundContrastRatio = 21 })

	p, err := g.Generate(colour.RGB{R: 200, G: 80, B: 80})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !p.HasWarning(WarningContrastRelaxed) {
		t.Fatalf("expected contrast relaxed warning, got %v", p.Warnings)
	}
	top := g.Index().Catalog().MaxLuminance()
	if p.Background.Light.Luminance <= top-g.Config().BackgroundSearchRange {
		t.Errorf("relaxed background %f should come from the brightest band", p.Background.Light.Luminance)
	}
}

func TestGeneratePropagatesShadeFailure(t *testing.T) {
	g := newTestGenerator(t, func(c *Config) { c.ShadeContrastRatio = 21 })

	if _, err := g.Generate(colour.RGB{R: 128, G: 128, B: 128}); err == nil {
		t.Error("expected error for an unsatisfiable ramp")
	}
}

func TestHueRangeContains(t *testing.T) {
	tests := []struct {
		r    HueRange
		hue  float64
		want bool
	}{
		{InfoHues, 180, true},
		{InfoHues, 174.9, false},
		{SuccessHues, 139, true},
		{DangerHues, 350, true},
		{DangerHues, 0, true},
		{DangerHues, 5, true},
		{DangerHues, 360, true},
		{DangerHues, 11, false},
		{DangerHues, 339, false},
		{WarningHues, 30, true},
		{WarningHues, 48, false},
	}

	for _, tt := range tests {
		if got := tt.r.Contains(tt.hue); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", tt.r, tt.hue, got, tt.want)
		}
	}
}

func TestSupportFallback(t *testing.T) {
	// At a 255 step only primaries and their mixes exist, none inside the warning hues.
	g := newTestGenerator(t, func(c *Config) {
		c.MinContrastRatio = 1.5
		c.RGBStepSize = catalog.Step{255, 255, 255}
		c.LuminanceBucketWidth = 0.1
	})

	white := catalog.NewSample(colour.RGB{R: 255, G: 255, B: 255})
	support := g.supportColours(white)
	want := catalog.NewSample(colour.HSLToRGB(WarningHues.End, fallbackSaturation, fallbackLightness))

	if support.Warning != want {
		t.Errorf("fallback = %s, want %s", support.Warning.RGB.Hex(), want.RGB.Hex())
	}
	if support.Danger.RGB != (colour.RGB{R: 255}) {
		t.Errorf("danger = %s, want the catalog red", support.Danger.RGB.Hex())
	}
}

func TestSupportColoursMatchPerRangeScan(t *testing.T) {
	g := newTestGenerator(t, func(c *Config) { c.RGBStepSize = catalog.Step{15, 15, 15} })

	// Reference: scan the catalog separately for each range.
	scan := func(hues HueRange, background catalog.Sample) catalog.Sample {
		var best catalog.Sample
		bestRatio := 0.0
		for _, s := range g.Index().Catalog().All() {
			if !hues.Contains(s.Hue) ||
				s.Saturation < supportMinSaturation || s.Saturation > supportMaxSaturation ||
				s.Lightness < supportMinLightness || s.Lightness > supportMaxLightness {
				continue
			}
			if ratio := colour.ContrastRatio(s.Luminance, background.Luminance); ratio > bestRatio {
				best, bestRatio = s, ratio
			}
		}
		return best
	}

	for _, bg := range []colour.RGB{{R: 250, G: 245, B: 230}, {R: 255, G: 255, B: 255}, {R: 20, G: 20, B: 30}} {
		background := catalog.NewSample(bg)
		got := g.supportColours(background)

		want := Support{
			Info:    scan(InfoHues, background),
			Success: scan(SuccessHues, background),
			Danger:  scan(DangerHues, background),
			Warning: scan(WarningHues, background),
		}
		if got != want {
			t.Errorf("background %s: support = %+v, want %+v", bg.Hex(), got, want)
		}
	}
}
