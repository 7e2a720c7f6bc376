package theme

import (
	"errors"
	"math"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

// RampCase records how the seed anchored a ramp.
type RampCase int

const (
	// RampBalanced: the seed is the middle shade with room on both sides.
	RampBalanced RampCase = iota
	// RampAscending: the seed is the darkest shade and the ramp climbs from it.
	RampAscending
	// RampDescending: the seed is the lightest shade and the ramp descends from it.
	RampDescending
)

func (c RampCase) String() string {
	switch c {
	case RampBalanced:
		return "balanced"
	case RampAscending:
		return "ascending"
	case RampDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// Shades is a darkest-to-lightest ramp in which neighbours reach the requested contrast.
type Shades struct {
	Samples  [3]catalog.Sample
	Anchor   int // Slot holding the seed, -1 when the ramp was re-anchored
	Case     RampCase
	Warnings []Warning
}

// errChainOverflow marks a ramp that ran off the end of the luminance range.
var errChainOverflow = errors.New("ramp overflows luminance range")

// Shades builds a three-step ramp around seed at ratio. When the seed sits too close to
// either end of the luminance range it becomes the outermost shade instead of the middle
// one; if even that does not fit, the ramp is anchored at that end of the catalog and a
// WarningSeedAdjusted is attached.
func (g *Generator) Shades(seed colour.RGB, ratio float64) (*Shades, error) {
	s := catalog.NewSample(seed)
	ref := ReferenceFor(s, 0)

	darker := colour.DarkerLuminanceFor(ratio, s.Luminance)
	lighter := colour.LighterLuminanceFor(ratio, s.Luminance)
	canDarken := colour.IsValidLuminance(darker)
	canLighten := colour.IsValidLuminance(lighter)

	g.logger.Debug("generating shades", "seed", seed.Hex(), "ratio", ratio, "luminance", s.Luminance,
		"darker", darker, "lighter", lighter)

	switch {
	case canDarken && canLighten:
		result := &Shades{Anchor: 1, Case: RampBalanced}
		result.Samples[1] = s

		low, warn, err := g.pickShade(0, darker, -g.config.ShadeSearchRange, ref, seed)
		if err != nil {
			return nil, shadeFailure(seed, ratio, "no darker shade", err)
		}
		result.Samples[0] = low
		result.Warnings = append(result.Warnings, warn...)

		high, warn, err := g.pickShade(2, lighter, g.config.ShadeSearchRange, ref, seed)
		if err != nil {
			return nil, shadeFailure(seed, ratio, "no lighter shade", err)
		}
		result.Samples[2] = high
		result.Warnings = append(result.Warnings, warn...)

		return result, nil

	case canLighten:
		return g.chainedShades(s, ratio, catalog.Above, ref, seed)

	case canDarken:
		return g.chainedShades(s, ratio, catalog.Below, ref, seed)

	default:
		return nil, &ShadeError{Seed: seed, Ratio: ratio, Reason: "seed luminance admits neither a darker nor a lighter shade"}
	}
}

// chainedShades places the seed at the outer slot and walks away from it in dir, falling
// back to anchoring at the far extreme when the walk overflows.
func (g *Generator) chainedShades(s catalog.Sample, ratio float64, dir catalog.Direction, ref Reference, seed colour.RGB) (*Shades, error) {
	result := &Shades{Case: RampAscending, Anchor: 0}
	slots := []int{1, 2}
	if dir == catalog.Below {
		result.Case, result.Anchor = RampDescending, 2
		slots = []int{1, 0}
	}

	picked, warns, err := g.walk(s, ratio, dir, slots, ref, seed)
	if err == nil {
		result.Samples[result.Anchor] = s
		result.Samples[slots[0]], result.Samples[slots[1]] = picked[0], picked[1]
		result.Warnings = warns
		return result, nil
	}
	if !errors.Is(err, errChainOverflow) {
		return nil, shadeFailure(seed, ratio, "no shade in range", err)
	}

	// Re-anchor at the extreme the chain overflowed towards and walk back to the seed end.
	cat := g.index.Catalog()
	var extremeTarget float64
	if dir == catalog.Above {
		extremeTarget = math.Nextafter(cat.MaxLuminance(), math.Inf(1))
	} else {
		extremeTarget = math.Nextafter(cat.MinLuminance(), math.Inf(-1))
	}
	back := -dir
	outer := slots[1]

	anchor, warns, err := g.pickShade(outer, extremeTarget, float64(back)*g.config.ShadeSearchRange, ref, seed)
	if err != nil {
		return nil, shadeFailure(seed, ratio, "cannot anchor at luminance extreme", err)
	}

	backSlots := []int{1, result.Anchor}
	picked, more, err := g.walk(anchor, ratio, back, backSlots, ref, seed)
	if err != nil {
		return nil, shadeFailure(seed, ratio, "re-anchored ramp does not fit", err)
	}

	result.Samples[outer] = anchor
	result.Samples[backSlots[0]], result.Samples[backSlots[1]] = picked[0], picked[1]
	effective := result.Samples[result.Anchor]
	result.Anchor = -1
	result.Warnings = append(append(warns, more...), Warning{
		Kind:               WarningSeedAdjusted,
		Role:               "primary",
		Message:            "seed replaced by " + effective.RGB.Hex() + " to fit the shade ramp",
		OriginalLuminance:  s.Luminance,
		EffectiveLuminance: effective.Luminance,
	})

	g.logger.Warn("seed adjusted to fit shade ramp", "seed", seed.Hex(), "effective", effective.RGB.Hex(),
		"original_luminance", s.Luminance, "effective_luminance", effective.Luminance)

	return result, nil
}

// walk picks two shades in dir, each at ratio against the one before it.
func (g *Generator) walk(from catalog.Sample, ratio float64, dir catalog.Direction, slots []int, ref Reference, seed colour.RGB) ([2]catalog.Sample, []Warning, error) {
	var picked [2]catalog.Sample
	var warnings []Warning

	prev := from
	for i := range picked {
		target := colour.LighterLuminanceFor(ratio, prev.Luminance)
		if dir == catalog.Below {
			target = colour.DarkerLuminanceFor(ratio, prev.Luminance)
		}
		if !colour.IsValidLuminance(target) {
			return picked, nil, errChainOverflow
		}

		next, warn, err := g.pickShade(slots[i], target, float64(dir)*g.config.ShadeSearchRange, ref, seed)
		if errors.Is(err, catalog.ErrCatalogExhausted) {
			return picked, nil, errors.Join(errChainOverflow, err)
		}
		if err != nil {
			return picked, nil, err
		}

		picked[i] = next
		warnings = append(warnings, warn...)
		prev = next
	}

	return picked, warnings, nil
}

// shadeFailure wraps err as a ShadeError. Hue mismatches are quality failures and pass through as is.
func shadeFailure(seed colour.RGB, ratio float64, reason string, err error) error {
	if errors.Is(err, ErrHueMismatch) {
		return err
	}
	return &ShadeError{Seed: seed, Ratio: ratio, Reason: reason, Err: err}
}

var errNoCandidates = errors.New("no catalog colours in luminance band")

// pickShade queries the band next to target and returns the best hue and saturation match.
func (g *Generator) pickShade(slot int, target, window float64, ref Reference, seed colour.RGB) (catalog.Sample, []Warning, error) {
	candidates, err := g.index.Query(target, window)
	if err != nil {
		return catalog.Sample{}, nil, err
	}
	if len(candidates) == 0 {
		return catalog.Sample{}, nil, errNoCandidates
	}

	best := ShadeRanking.Rank(candidates, ref)[0]

	distance := colour.HueDistance(best.Hue, ref.Hue)
	if distance <= g.config.HueTolerance {
		return best, nil, nil
	}

	mismatch := &HueMismatchError{
		Slot:      slot,
		Seed:      seed,
		Candidate: best.RGB,
		Distance:  distance,
		Tolerance: g.config.HueTolerance,
	}
	if g.config.StrictHue {
		return catalog.Sample{}, nil, mismatch
	}

	g.logger.Debug("accepting shade outside hue tolerance", "slot", slot, "candidate", best.RGB.Hex(), "distance", distance)
	return best, []Warning{{Kind: WarningHueMismatch, Role: "primary", Message: mismatch.Error()}}, nil
}
