package theme

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/tincture/internal/colour"
)

var (
	// ErrShadeGeneration is returned when no three-step ramp can be anchored on the seed.
	ErrShadeGeneration = errors.New("shade generation failed")

	// ErrHueMismatch is returned when the best candidate for a slot strays too far from the seed hue.
	ErrHueMismatch = errors.New("hue mismatch")
)

// ShadeError describes why a ramp could not be generated.
type ShadeError struct {
	Seed   colour.RGB
	Ratio  float64
	Reason string
	Err    error
}

func (e *ShadeError) Error() string {
	msg := fmt.Sprintf("cannot build %.2f:1 shades for %s: %s", e.Ratio, e.Seed.Hex(), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrShadeGeneration as the error's kind.
func (e *ShadeError) Is(target error) bool {
	return target == ErrShadeGeneration
}

func (e *ShadeError) Unwrap() error {
	return e.Err
}

// HueMismatchError reports a luminance-valid candidate whose hue is outside tolerance.
type HueMismatchError struct {
	Slot      int
	Seed      colour.RGB
	Candidate colour.RGB
	Distance  float64
	Tolerance float64
}

func (e *HueMismatchError) Error() string {
	return fmt.Sprintf("shade %d: closest candidate %s is %.1f° from seed %s hue (tolerance %.1f°)",
		e.Slot, e.Candidate.Hex(), e.Distance, e.Seed.Hex(), e.Tolerance)
}

func (e *HueMismatchError) Unwrap() error {
	return ErrHueMismatch
}

// WarningKind classifies a degraded but usable result.
type WarningKind string

const (
	// WarningSeedAdjusted means the ramp was re-anchored and the seed is not one of the shades.
	WarningSeedAdjusted WarningKind = "seed_adjusted"
	// WarningHueMismatch means a shade exceeded the hue tolerance and StrictHue was off.
	WarningHueMismatch WarningKind = "hue_mismatch"
	// WarningContrastRelaxed means a colour could not reach its target contrast ratio.
	WarningContrastRelaxed WarningKind = "contrast_relaxed"
	// WarningRankFallback means fewer candidates existed than the configured rank.
	WarningRankFallback WarningKind = "rank_fallback"
)

// Warning is returned alongside a successful result to flag a degraded choice.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Role    string      `json:"role,omitempty"`
	Message string      `json:"message"`

	// Set for WarningSeedAdjusted.
	OriginalLuminance  float64 `json:"original_luminance,omitempty"`
	EffectiveLuminance float64 `json:"effective_luminance,omitempty"`
}

func (w Warning) String() string {
	if w.Role == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s (%s): %s", w.Kind, w.Role, w.Message)
}
