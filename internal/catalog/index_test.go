package catalog

import (
	"errors"
	"math"
	"testing"
)

func linearFirstAtOrAbove(cat *Catalog, target float64) int {
	for i, s := range cat.Samples() {
		if s.Luminance >= target {
			return i
		}
	}
	return cat.Len()
}

func linearFirstAbove(cat *Catalog, target float64) int {
	for i, s := range cat.Samples() {
		if s.Luminance > target {
			return i
		}
	}
	return cat.Len()
}

func mustIndex(t *testing.T, cat *Catalog, width float64) *Index {
	t.Helper()
	ix, err := NewIndex(cat, width)
	if err != nil {
		t.Fatalf("NewIndex(%v) error: %v", width, err)
	}
	return ix
}

func TestIndexInvariants(t *testing.T) {
	cat := mustBuild(t, Step{15, 15, 15}, 4.5)

	for _, width := range []float64{0.0025, 0.01, 0.025, 0.3} {
		ix := mustIndex(t, cat, width)

		if want := int(math.Ceil(1 / width)); ix.Buckets() != want {
			t.Errorf("width %v: %d buckets, want %d", width, ix.Buckets(), want)
		}
		if ix.starts[0] != 0 {
			t.Errorf("width %v: starts[0] = %d, want 0", width, ix.starts[0])
		}
		for b := 1; b < len(ix.starts); b++ {
			if ix.starts[b] < ix.starts[b-1] {
				t.Fatalf("width %v: starts not monotonic at bucket %d", width, b)
			}
			if p := ix.starts[b]; p > 0 && cat.At(p-1).Luminance >= float64(b)*width {
				t.Fatalf("width %v: bucket %d starts too late at %d", width, b, p)
			}
		}
	}
}

func TestIndexSeekMatchesLinearScan(t *testing.T) {
	cat := mustBuild(t, Step{15, 15, 15}, 4.5)

	targets := []float64{-0.5, 0, 1, 1.5}
	for lum := -0.01; lum <= 1.01; lum += 0.0013 {
		targets = append(targets, lum)
	}
	// Exact sample luminances exercise the >= versus > boundary.
	for i := 0; i < cat.Len(); i += 37 {
		targets = append(targets, cat.At(i).Luminance)
	}

	for _, width := range []float64{0.0025, 0.01, 0.025, 0.3} {
		ix := mustIndex(t, cat, width)
		for _, target := range targets {
			if got, want := ix.FirstAtOrAbove(target), linearFirstAtOrAbove(cat, target); got != want {
				t.Fatalf("width %v: FirstAtOrAbove(%v) = %d, linear scan = %d", width, target, got, want)
			}
			if got, want := ix.FirstAbove(target), linearFirstAbove(cat, target); got != want {
				t.Fatalf("width %v: FirstAbove(%v) = %d, linear scan = %d", width, target, got, want)
			}
		}
	}
}

func TestNewIndexValidation(t *testing.T) {
	cat := mustBuild(t, Step{51, 51, 51}, 3)

	for _, width := range []float64{0, -0.1, 1.5} {
		if _, err := NewIndex(cat, width); err == nil {
			t.Errorf("NewIndex(width %v) expected error", width)
		}
	}
	if _, err := NewIndex(nil, 0.01); err == nil {
		t.Error("NewIndex(nil) expected error")
	}
}

func TestQueryBands(t *testing.T) {
	cat := mustBuild(t, Step{5, 15, 17}, 4.5)
	ix := mustIndex(t, cat, 0.0025)

	tests := []struct {
		name           string
		target, window float64
	}{
		{name: "below mid", target: 0.4, window: -0.04},
		{name: "above mid", target: 0.4, window: 0.04},
		{name: "below dark", target: 0.05, window: -0.0025},
		{name: "above light", target: 0.7, window: 0.026},
		{name: "below clamps to start", target: 0.02, window: -0.5},
		{name: "above clamps to end", target: 0.98, window: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.Query(tt.target, tt.window)
			if err != nil {
				t.Fatalf("Query() error: %v", err)
			}

			lo, hi := tt.target, tt.target+tt.window
			if lo > hi {
				lo, hi = hi, lo
			}

			want := 0
			for _, s := range cat.Samples() {
				if s.Luminance > lo && s.Luminance < hi {
					want++
				}
			}

			if len(got) != want {
				t.Fatalf("Query(%v, %v) returned %d samples, want %d", tt.target, tt.window, len(got), want)
			}
			if want == 0 {
				t.Fatalf("band (%v, %v) unexpectedly empty", lo, hi)
			}
			for i, s := range got {
				if s.Luminance <= lo || s.Luminance >= hi {
					t.Fatalf("sample %v lum %f outside (%f, %f)", s.RGB, s.Luminance, lo, hi)
				}
				if i > 0 && got[i-1].Luminance > s.Luminance {
					t.Fatal("result not in catalog order")
				}
			}
			if cap(got) != len(got) {
				t.Errorf("result capacity %d exceeds length %d", cap(got), len(got))
			}
		})
	}
}

func TestQueryExhausted(t *testing.T) {
	cat := mustBuild(t, Step{15, 15, 15}, 4.5)
	ix := mustIndex(t, cat, 0.01)

	tests := []struct {
		name           string
		target, window float64
		direction      Direction
	}{
		{name: "below darkest", target: cat.MinLuminance(), window: -0.1, direction: Below},
		{name: "below zero", target: -0.2, window: -0.1, direction: Below},
		{name: "above lightest", target: cat.MaxLuminance(), window: 0.1, direction: Above},
		{name: "above one", target: 1.3, window: 0.1, direction: Above},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ix.Query(tt.target, tt.window)
			if !errors.Is(err, ErrCatalogExhausted) {
				t.Fatalf("Query(%v, %v) error = %v, want ErrCatalogExhausted", tt.target, tt.window, err)
			}

			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("error %T is not *OutOfRangeError", err)
			}
			if oor.Direction != tt.direction {
				t.Errorf("direction = %v, want %v", oor.Direction, tt.direction)
			}
		})
	}
}

func TestQueryZeroWindow(t *testing.T) {
	cat := mustBuild(t, Step{51, 51, 51}, 3)
	ix := mustIndex(t, cat, 0.01)

	got, err := ix.Query(0.5, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("Query(0.5, 0) = %d samples, %v; want empty", len(got), err)
	}
}

func TestQueryTopSample(t *testing.T) {
	cat := mustBuild(t, Step{51, 51, 51}, 4.5)
	ix := mustIndex(t, cat, 0.01)
	top := cat.At(cat.Len() - 1)

	// The last sample is still returned on its own; only a query starting at it is exhausted.
	got, err := ix.Query(math.Nextafter(top.Luminance, math.Inf(-1)), 0.1)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 1 || got[0] != top {
		t.Errorf("Query() = %v, want only the top sample", got)
	}

	if _, err := ix.Query(top.Luminance, 0.1); !errors.Is(err, ErrCatalogExhausted) {
		t.Errorf("Query(top) error = %v, want ErrCatalogExhausted", err)
	}
}

func TestIndexBoundarySampleOpensBucket(t *testing.T) {
	cat := mustBuild(t, Step{51, 51, 51}, 4.5)
	ix := mustIndex(t, cat, 0.01)

	// Black sits exactly on the 0 boundary and must open bucket 0.
	if cat.At(0).Luminance != 0 {
		t.Fatalf("darkest sample lum = %f, want 0", cat.At(0).Luminance)
	}
	if ix.starts[0] != 0 || ix.Seek(0) != 0 {
		t.Errorf("starts[0] = %d, Seek(0) = %d; want 0", ix.starts[0], ix.Seek(0))
	}
}
