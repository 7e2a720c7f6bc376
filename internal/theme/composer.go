package theme

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

// Generate derives a full palette from seed: the primary ramp, a secondary colour,
// light and dark background/text pairs and the support colours.
func (g *Generator) Generate(seed colour.RGB) (*Palette, error) {
	shades, err := g.Shades(seed, g.config.ShadeContrastRatio)
	if err != nil {
		return nil, err
	}

	p := &Palette{
		Seed:          seed,
		PrimaryShades: shades.Samples,
		Warnings:      shades.Warnings,
	}
	seedSample := catalog.NewSample(seed)

	p.Secondary = g.secondary(seedSample, shades.Samples[1])

	p.Background.Light, err = g.lightBackground(seedSample, shades.Samples[0], &p.Warnings)
	if err != nil {
		return nil, err
	}
	p.Text.Light = shades.Samples[0]

	p.Background.Dark, err = g.darkBackground(seedSample)
	if err != nil {
		return nil, err
	}

	p.Text.Dark, err = g.darkText(seedSample, p.Background.Dark, &p.Warnings)
	if err != nil {
		return nil, err
	}

	p.Support = g.supportColours(p.Background.Light)

	g.logger.Debug("generated palette", "seed", seed.Hex(), "case", shades.Case,
		"background", p.Background.Light.RGB.Hex(), "text", p.Text.Light.RGB.Hex(), "warnings", len(p.Warnings))

	return p, nil
}

// lightBackground searches above the darkest shade for a muted colour at the background
// contrast ratio. When no colour is light enough the brightest band is used instead.
func (g *Generator) lightBackground(seed, text catalog.Sample, warnings *[]Warning) (catalog.Sample, error) {
	ref := ReferenceFor(seed, 0)
	target := colour.LighterLuminanceFor(g.config.BackgroundContrastRatio, text.Luminance)

	if colour.IsValidLuminance(target) {
		candidates, err := g.index.Query(target, g.config.BackgroundSearchRange)
		if err != nil && !errors.Is(err, catalog.ErrCatalogExhausted) {
			return catalog.Sample{}, err
		}
		if len(candidates) > 0 {
			return BackgroundRanking.Rank(candidates, ref)[0], nil
		}
	}

	top := math.Nextafter(g.index.Catalog().MaxLuminance(), math.Inf(1))
	candidates, err := g.index.Query(top, -g.config.BackgroundSearchRange)
	if err != nil {
		return catalog.Sample{}, fmt.Errorf("failed to select light background: %w", err)
	}
	if len(candidates) == 0 {
		return catalog.Sample{}, fmt.Errorf("failed to select light background: %w", errNoCandidates)
	}

	best := BackgroundRanking.Rank(candidates, ref)[0]
	achieved := colour.ContrastRatio(best.Luminance, text.Luminance)
	*warnings = append(*warnings, Warning{
		Kind:    WarningContrastRelaxed,
		Role:    "background",
		Message: fmt.Sprintf("background reaches %.2f:1 against text, below the %.2f:1 target", achieved, g.config.BackgroundContrastRatio),
	})
	g.logger.Warn("light background contrast relaxed", "achieved", achieved, "target", g.config.BackgroundContrastRatio)

	return best, nil
}

// darkBackground searches just below the configured near-black luminance, biased a triadic
// step away from the seed hue.
func (g *Generator) darkBackground(seed catalog.Sample) (catalog.Sample, error) {
	ref := ReferenceFor(seed, -g.config.TriadicOffset)

	candidates, err := g.index.Query(g.config.DarkBackgroundLuminance, -g.config.DarkBackgroundSearchRange)
	if err != nil {
		return catalog.Sample{}, fmt.Errorf("failed to select dark background: %w", err)
	}
	if len(candidates) == 0 {
		return catalog.Sample{}, fmt.Errorf("failed to select dark background: %w", errNoCandidates)
	}

	return DarkBackgroundRanking.Rank(candidates, ref)[0], nil
}

// darkText searches above the dark background at the dark text ratio, biased two triadic
// steps from the seed hue, and takes the configured rank.
func (g *Generator) darkText(seed, background catalog.Sample, warnings *[]Warning) (catalog.Sample, error) {
	ref := ReferenceFor(seed, -2*g.config.TriadicOffset)

	target := colour.LighterLuminanceFor(g.config.DarkTextContrastRatio, background.Luminance)
	if !colour.IsValidLuminance(target) {
		return catalog.Sample{}, fmt.Errorf("dark text luminance %.4f is out of range for background %s", target, background.RGB.Hex())
	}

	candidates, err := g.index.Query(target, g.config.DarkTextSearchRange)
	if err != nil {
		return catalog.Sample{}, fmt.Errorf("failed to select dark text: %w", err)
	}
	if len(candidates) == 0 {
		return catalog.Sample{}, fmt.Errorf("failed to select dark text: %w", errNoCandidates)
	}

	ranked := DarkTextRanking.Rank(candidates, ref)
	if rank := g.config.DarkTextRank; rank < len(ranked) {
		return ranked[rank], nil
	}

	*warnings = append(*warnings, Warning{
		Kind:    WarningRankFallback,
		Role:    "text-dark",
		Message: fmt.Sprintf("only %d candidates for rank %d, using the last", len(ranked), g.config.DarkTextRank),
	})
	return ranked[len(ranked)-1], nil
}

// secondary picks a colour of similar luminance to the middle shade, a triadic step around
// the wheel from the seed. The middle shade is used when nothing is close enough.
func (g *Generator) secondary(seed, middle catalog.Sample) catalog.Sample {
	ref := ReferenceFor(seed, g.config.TriadicOffset)

	var candidates []catalog.Sample
	for _, window := range []float64{-g.config.SecondarySearchRange, g.config.SecondarySearchRange} {
		band, err := g.index.Query(middle.Luminance, window)
		if err != nil {
			continue
		}
		candidates = append(candidates, band...)
	}

	if len(candidates) == 0 {
		return middle
	}
	return SecondaryRanking.Rank(candidates, ref)[0]
}
