// Package theme derives contrast-checked palettes from a single seed colour by searching
// the luminance-indexed colour catalog.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tincture/internal/catalog"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "TINCTURE_"

// Config holds every tunable used by catalog construction and palette search.
// Saturation-type values are unit fractions and hue values are degrees.
type Config struct {
	MinContrastRatio     float64      `yaml:"min_contrast_ratio"`
	RGBStepSize          catalog.Step `yaml:"rgb_step_size"`
	LuminanceBucketWidth float64      `yaml:"luminance_bucket_width"`

	ShadeContrastRatio float64 `yaml:"shade_contrast_ratio"`
	ShadeSearchRange   float64 `yaml:"shade_search_range"`
	HueTolerance       float64 `yaml:"hue_tolerance"`
	StrictHue          bool    `yaml:"strict_hue"` // Reject shades outside HueTolerance instead of warning

	BackgroundContrastRatio   float64 `yaml:"background_contrast_ratio"`
	BackgroundSearchRange     float64 `yaml:"background_search_range"`
	DarkBackgroundLuminance   float64 `yaml:"dark_background_luminance"`
	DarkBackgroundSearchRange float64 `yaml:"dark_background_search_range"`
	DarkTextContrastRatio     float64 `yaml:"dark_text_contrast_ratio"`
	DarkTextSearchRange       float64 `yaml:"dark_text_search_range"`
	DarkTextRank              int     `yaml:"dark_text_rank"` // 0 is the best candidate

	TriadicOffset        float64 `yaml:"triadic_offset"`
	SecondarySearchRange float64 `yaml:"secondary_search_range"`
}

// DefaultConfig returns the default palette configuration.
func DefaultConfig() Config {
	return Config{
		MinContrastRatio:     4.5, // WCAG AA
		RGBStepSize:          catalog.Step{5, 5, 15},
		LuminanceBucketWidth: 0.0025,

		ShadeContrastRatio: 3,
		ShadeSearchRange:   0.04,
		HueTolerance:       15,
		StrictHue:          true,

		BackgroundContrastRatio:   9.2,
		BackgroundSearchRange:     0.026,
		DarkBackgroundLuminance:   0.05,
		DarkBackgroundSearchRange: 0.01,
		DarkTextContrastRatio:     7.4,
		DarkTextSearchRange:       0.01,
		DarkTextRank:              1,

		TriadicOffset:        120,
		SecondarySearchRange: 0.02,
	}
}

// CatalogKey returns the cache key for the catalog this configuration searches.
func (c Config) CatalogKey() catalog.Key {
	return catalog.Key{
		Step:        c.RGBStepSize,
		MinContrast: c.MinContrastRatio,
		BucketWidth: c.LuminanceBucketWidth,
	}
}

// Validate checks the configuration for values the search cannot work with.
func (c Config) Validate() error {
	var errs []error

	if err := c.RGBStepSize.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.LuminanceBucketWidth <= 0 || c.LuminanceBucketWidth > 1 {
		errs = append(errs, fmt.Errorf("luminance bucket width must be in (0, 1], got %v", c.LuminanceBucketWidth))
	}

	type setting struct {
		name  string
		value float64
	}

	ratios := []setting{
		{"min contrast ratio", c.MinContrastRatio},
		{"shade contrast ratio", c.ShadeContrastRatio},
		{"background contrast ratio", c.BackgroundContrastRatio},
		{"dark text contrast ratio", c.DarkTextContrastRatio},
	}
	for _, r := range ratios {
		if r.value < 1 || r.value > 21 {
			errs = append(errs, fmt.Errorf("%s must be between 1 and 21, got %v", r.name, r.value))
		}
	}

	ranges := []setting{
		{"shade search range", c.ShadeSearchRange},
		{"background search range", c.BackgroundSearchRange},
		{"dark background search range", c.DarkBackgroundSearchRange},
		{"dark text search range", c.DarkTextSearchRange},
		{"secondary search range", c.SecondarySearchRange},
	}
	for _, r := range ranges {
		if r.value <= 0 || r.value > 1 {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", r.name, r.value))
		}
	}

	if c.DarkBackgroundLuminance <= 0 || c.DarkBackgroundLuminance > 1 {
		errs = append(errs, fmt.Errorf("dark background luminance must be in (0, 1], got %v", c.DarkBackgroundLuminance))
	}
	if c.HueTolerance < 0 || c.HueTolerance > 180 {
		errs = append(errs, fmt.Errorf("hue tolerance must be between 0 and 180, got %v", c.HueTolerance))
	}
	if c.DarkTextRank < 0 {
		errs = append(errs, fmt.Errorf("dark text rank must not be negative, got %d", c.DarkTextRank))
	}

	return errors.Join(errs...)
}

// LoadConfigFile overlays the YAML file at path onto c. Keys missing from the file keep
// their current values.
func (c *Config) LoadConfigFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - user-provided config path
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays TINCTURE_* variables onto c, e.g. TINCTURE_SHADE_CONTRAST_RATIO=3.5 or
// TINCTURE_RGB_STEP_SIZE=5,5,17. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"MIN_CONTRAST_RATIO":           &c.MinContrastRatio,
		"LUMINANCE_BUCKET_WIDTH":       &c.LuminanceBucketWidth,
		"SHADE_CONTRAST_RATIO":         &c.ShadeContrastRatio,
		"SHADE_SEARCH_RANGE":           &c.ShadeSearchRange,
		"HUE_TOLERANCE":                &c.HueTolerance,
		"BACKGROUND_CONTRAST_RATIO":    &c.BackgroundContrastRatio,
		"BACKGROUND_SEARCH_RANGE":      &c.BackgroundSearchRange,
		"DARK_BACKGROUND_LUMINANCE":    &c.DarkBackgroundLuminance,
		"DARK_BACKGROUND_SEARCH_RANGE": &c.DarkBackgroundSearchRange,
		"DARK_TEXT_CONTRAST_RATIO":     &c.DarkTextContrastRatio,
		"DARK_TEXT_SEARCH_RANGE":       &c.DarkTextSearchRange,
		"TRIADIC_OFFSET":               &c.TriadicOffset,
		"SECONDARY_SEARCH_RANGE":       &c.SecondarySearchRange,
	}

	for name, dst := range floats {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
	}

	if v, ok := lookup(EnvPrefix + "DARK_TEXT_RANK"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sDARK_TEXT_RANK: %w", EnvPrefix, err)
		}
		c.DarkTextRank = n
	}

	if v, ok := lookup(EnvPrefix + "STRICT_HUE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sSTRICT_HUE: %w", EnvPrefix, err)
		}
		c.StrictHue = b
	}

	if v, ok := lookup(EnvPrefix + "RGB_STEP_SIZE"); ok {
		step, err := ParseStep(v)
		if err != nil {
			return fmt.Errorf("invalid %sRGB_STEP_SIZE: %w", EnvPrefix, err)
		}
		c.RGBStepSize = step
	}

	return nil
}

// ParseStep parses "r,g,b" or a single stride applied to all three channels.
func ParseStep(s string) (catalog.Step, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		parts = []string{parts[0], parts[0], parts[0]}
	}
	if len(parts) != 3 {
		return catalog.Step{}, fmt.Errorf("expected r,g,b step, got %q", s)
	}

	var step catalog.Step
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return catalog.Step{}, fmt.Errorf("invalid step component %q: %w", p, err)
		}
		step[i] = n
	}

	if err := step.Validate(); err != nil {
		return catalog.Step{}, err
	}
	return step, nil
}
