package theme

import (
	"math"
	"testing"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/colour"
)

func TestRankingScore(t *testing.T) {
	ref := Reference{Hue: 10, Saturation: 0.5}
	c := catalog.Sample{Hue: 350, Saturation: 0.8}

	tests := []struct {
		name    string
		ranking Ranking
		want    float64
	}{
		{name: "hue", ranking: Ranking{HueDistanceTerm(4)}, want: 4 * 20.0 / 360},
		{name: "saturation distance", ranking: Ranking{SaturationDistanceTerm(1)}, want: 0.3},
		{name: "saturation", ranking: Ranking{SaturationTerm(3)}, want: 2.4},
		{name: "shade", ranking: ShadeRanking, want: 4*20.0/360 + 0.3},
		{name: "empty", ranking: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ranking.Score(c, ref); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankingRankIsStable(t *testing.T) {
	samples := []catalog.Sample{
		catalog.NewSample(colour.RGB{R: 10, G: 200, B: 10}),  // green
		catalog.NewSample(colour.RGB{R: 200, G: 10, B: 10}),  // red
		catalog.NewSample(colour.RGB{R: 180, G: 20, B: 20}),  // red, same hue
		catalog.NewSample(colour.RGB{R: 10, G: 10, B: 200}),  // blue
		catalog.NewSample(colour.RGB{R: 210, G: 30, B: 100}), // pink
	}
	input := append([]catalog.Sample(nil), samples...)

	ranked := Ranking{HueDistanceTerm(1)}.Rank(samples, Reference{Hue: 0})

	if len(ranked) != len(samples) {
		t.Fatalf("ranked %d samples, want %d", len(ranked), len(samples))
	}
	// Equal scores keep input order.
	if ranked[0] != samples[1] || ranked[1] != samples[2] {
		t.Errorf("reds ranked %s, %s", ranked[0].RGB.Hex(), ranked[1].RGB.Hex())
	}
	if ranked[2] != samples[4] {
		t.Errorf("third = %s, want pink", ranked[2].RGB.Hex())
	}

	for i := range samples {
		if samples[i] != input[i] {
			t.Fatal("Rank modified its input")
		}
	}
}

func TestReferenceFor(t *testing.T) {
	s := catalog.NewSample(colour.RGB{R: 243, G: 200, B: 20})

	ref := ReferenceFor(s, -120)
	if want := colour.RotateHue(s.Hue, -120); ref.Hue != want {
		t.Errorf("hue = %v, want %v", ref.Hue, want)
	}
	if ref.Saturation != s.Saturation {
		t.Errorf("saturation = %v, want %v", ref.Saturation, s.Saturation)
	}
}
