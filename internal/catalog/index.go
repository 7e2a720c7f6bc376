package catalog

import (
	"fmt"
	"math"
)

// Index maps fixed-width luminance buckets to the first catalog position inside each bucket,
// so lookups can start close to their target instead of at position 0.
type Index struct {
	catalog *Catalog
	width   float64
	starts  []int
}

// NewIndex builds the bucket index for cat in a single ascending pass.
// starts[b] is the smallest position whose luminance is at least b*width. The lower
// bound is closed so a sample lying exactly on a boundary, black at 0 included, opens
// that bucket and starts[0] is always 0.
func NewIndex(cat *Catalog, width float64) (*Index, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if width <= 0 || width > 1 {
		return nil, fmt.Errorf("luminance bucket width must be in (0, 1], got %g", width)
	}

	buckets := int(math.Ceil(1 / width))
	starts := make([]int, buckets)

	pos := 0
	for b := range buckets {
		bound := float64(b) * width
		for pos < len(cat.samples) && cat.samples[pos].Luminance < bound {
			pos++
		}
		starts[b] = pos
	}

	return &Index{
		catalog: cat,
		width:   width,
		starts:  starts,
	}, nil
}

// Catalog returns the catalog the index was built over.
func (ix *Index) Catalog() *Catalog {
	return ix.catalog
}

// BucketWidth returns the luminance width of each bucket.
func (ix *Index) BucketWidth() float64 {
	return ix.width
}

// Buckets returns the number of buckets.
func (ix *Index) Buckets() int {
	return len(ix.starts)
}

// Seek returns the first catalog position of the bucket containing target.
// Every position before it has luminance strictly below target.
func (ix *Index) Seek(target float64) int {
	if len(ix.starts) == 0 || !(target > 0) {
		return 0
	}
	b := int(math.Floor(target / ix.width))
	if b >= len(ix.starts) {
		b = len(ix.starts) - 1
	}
	// Division can round up onto the next bucket boundary.
	for b > 0 && float64(b)*ix.width > target {
		b--
	}
	return ix.starts[b]
}

// FirstAtOrAbove returns the first position with luminance >= target, or Len() when none.
func (ix *Index) FirstAtOrAbove(target float64) int {
	samples := ix.catalog.samples
	pos := ix.Seek(target)
	for pos < len(samples) && samples[pos].Luminance < target {
		pos++
	}
	return pos
}

// FirstAbove returns the first position with luminance > target, or Len() when none.
func (ix *Index) FirstAbove(target float64) int {
	samples := ix.catalog.samples
	pos := ix.Seek(target)
	for pos < len(samples) && samples[pos].Luminance <= target {
		pos++
	}
	return pos
}
