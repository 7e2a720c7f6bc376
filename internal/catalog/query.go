package catalog

import (
	"errors"
	"fmt"
)

// ErrCatalogExhausted is returned when a range query cannot move any further in the
// requested direction because the catalog boundary has been reached.
var ErrCatalogExhausted = errors.New("catalog exhausted")

// Direction is the side of the target a query searches.
type Direction int

const (
	// Below searches luminances darker than the target.
	Below Direction = -1
	// Above searches luminances lighter than the target.
	Above Direction = 1
)

// String returns "below" or "above".
func (d Direction) String() string {
	if d == Below {
		return "below"
	}
	return "above"
}

// OutOfRangeError reports a query whose near boundary sits at the catalog edge.
type OutOfRangeError struct {
	Target    float64
	Window    float64
	Direction Direction
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("no catalog entries %s luminance %.4f (window %+.4f)", e.Direction, e.Target, e.Window)
}

// Unwrap lets errors.Is match ErrCatalogExhausted.
func (e *OutOfRangeError) Unwrap() error {
	return ErrCatalogExhausted
}

// Query returns the samples whose luminance lies strictly between target and target+window,
// in catalog order. A negative window searches below the target, a positive one above.
// When target+window lies outside the luminance range the far end is clamped to the catalog edge.
//
// The returned slice aliases the catalog and must not be modified. An empty result means the
// band holds no samples; an *OutOfRangeError means there is nothing at all on that side.
func (ix *Index) Query(target, window float64) ([]Sample, error) {
	samples := ix.catalog.samples
	far := target + window

	switch {
	case window < 0:
		near := ix.FirstAtOrAbove(target)
		if near == 0 {
			return nil, &OutOfRangeError{Target: target, Window: window, Direction: Below}
		}

		// Past either end of the luminance range this lands on the catalog edge.
		start := min(ix.FirstAbove(far), near)
		return samples[start:near:near], nil

	case window > 0:
		near := ix.FirstAbove(target)
		if near >= len(samples) {
			return nil, &OutOfRangeError{Target: target, Window: window, Direction: Above}
		}

		end := max(ix.FirstAtOrAbove(far), near)
		return samples[near:end:end], nil

	default:
		return nil, nil
	}
}
