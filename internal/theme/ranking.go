package theme

import (
	"cmp"
	"math"
	"slices"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

// Reference is the hue and saturation candidates are scored against.
type Reference struct {
	Hue        float64
	Saturation float64
}

// ReferenceFor returns s's hue and saturation, with the hue rotated by degrees.
func ReferenceFor(s catalog.Sample, degrees float64) Reference {
	return Reference{Hue: colour.RotateHue(s.Hue, degrees), Saturation: s.Saturation}
}

// Term is one named, weighted scoring function. Lower scores rank better.
type Term struct {
	Name   string
	Weight float64
	Score  func(candidate catalog.Sample, ref Reference) float64
}

// HueDistanceTerm scores circular hue distance from the reference, normalised by 360.
func HueDistanceTerm(weight float64) Term {
	return Term{
		Name:   "hue_distance",
		Weight: weight,
		Score: func(c catalog.Sample, ref Reference) float64 {
			return colour.HueDistance(c.Hue, ref.Hue) / 360
		},
	}
}

// SaturationDistanceTerm scores the absolute saturation difference from the reference.
func SaturationDistanceTerm(weight float64) Term {
	return Term{
		Name:   "saturation_distance",
		Weight: weight,
		Score: func(c catalog.Sample, ref Reference) float64 {
			return math.Abs(c.Saturation - ref.Saturation)
		},
	}
}

// SaturationTerm scores saturation itself, preferring muted candidates.
func SaturationTerm(weight float64) Term {
	return Term{
		Name:   "saturation",
		Weight: weight,
		Score: func(c catalog.Sample, _ Reference) float64 {
			return c.Saturation
		},
	}
}

// Ranking is a weighted sum of terms.
type Ranking []Term

// Rankings used by the palette search.
var (
	ShadeRanking          = Ranking{HueDistanceTerm(4), SaturationDistanceTerm(1)}
	BackgroundRanking     = Ranking{SaturationTerm(3), HueDistanceTerm(2)}
	DarkBackgroundRanking = Ranking{SaturationTerm(3), HueDistanceTerm(9)}
	DarkTextRanking       = Ranking{SaturationTerm(3), HueDistanceTerm(2)}
	SecondaryRanking      = Ranking{HueDistanceTerm(1), SaturationDistanceTerm(1)}
)

// Score returns the weighted score of c against ref.
func (r Ranking) Score(c catalog.Sample, ref Reference) float64 {
	var total float64
	for _, t := range r {
		total += t.Weight * t.Score(c, ref)
	}
	return total
}

// Rank returns a copy of candidates ordered best first. Equal scores keep their input order,
// which for query results is catalog order.
func (r Ranking) Rank(candidates []catalog.Sample, ref Reference) []catalog.Sample {
	type scored struct {
		sample catalog.Sample
		score  float64
	}

	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{sample: c, score: r.Score(c, ref)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(a.score, b.score)
	})

	out := make([]catalog.Sample, len(ranked))
	for i, s := range ranked {
		out[i] = s.sample
	}
	return out
}
