package colour

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// splitImage returns a 40x40 image whose left 30 columns are left and the rest right.
func splitImage(left, right color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 30 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestKMeansDominant(t *testing.T) {
	img := splitImage(color.RGBA{R: 200, G: 30, B: 30, A: 255}, color.RGBA{R: 20, G: 40, B: 220, A: 255})

	got, err := NewKMeansExtractor(42).Dominant(img, 2)
	if err != nil {
		t.Fatalf("Dominant() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Dominant() returned %d colours, want 2", len(got))
	}

	if got[0].RGB != (RGB{200, 30, 30}) {
		t.Errorf("dominant colour = %v, want rgb(200, 30, 30)", got[0].RGB)
	}
	if math.Abs(got[0].Weight-0.75) > 1e-9 {
		t.Errorf("dominant weight = %f, want 0.75", got[0].Weight)
	}
	if got[1].RGB != (RGB{20, 40, 220}) {
		t.Errorf("second colour = %v, want rgb(20, 40, 220)", got[1].RGB)
	}
}

func TestKMeansDeterministic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}

	first, err := NewKMeansExtractor(7).Dominant(img, 4)
	if err != nil {
		t.Fatalf("Dominant() error: %v", err)
	}
	second, err := NewKMeansExtractor(7).Dominant(img, 4)
	if err != nil {
		t.Fatalf("Dominant() error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs returned %d and %d colours", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("colour %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestKMeansValidation(t *testing.T) {
	e := NewKMeansExtractor(1)

	if _, err := e.Dominant(nil, 3); err == nil {
		t.Error("expected error for nil image")
	}

	img := splitImage(color.RGBA{A: 255}, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if _, err := e.Dominant(img, 0); err == nil {
		t.Error("expected error for zero count")
	}
	if _, err := e.Dominant(img, 257); err == nil {
		t.Error("expected error for count above 256")
	}
}
