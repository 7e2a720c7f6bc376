package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/tincture/internal/catalog"
	"github.com/jmylchreest/tincture/internal/theme"
)

// stepValue is a pflag.Value for an RGB step given as "r,g,b" or a single stride.
type stepValue struct {
	step *catalog.Step
}

func (v *stepValue) String() string {
	if v.step == nil {
		return ""
	}
	return v.step.String()
}

func (v *stepValue) Set(s string) error {
	step, err := theme.ParseStep(s)
	if err != nil {
		return err
	}
	*v.step = step
	return nil
}

func (v *stepValue) Type() string {
	return "r,g,b"
}

// configFlags binds command-line flags to theme.Config fields. Only flags the user set
// are copied over the configuration, so files and environment variables keep their
// values for everything else.
type configFlags struct {
	values   theme.Config
	bindings map[string]func(dst *theme.Config)
}

func newConfigFlags() *configFlags {
	return &configFlags{
		values:   theme.DefaultConfig(),
		bindings: make(map[string]func(dst *theme.Config)),
	}
}

func (cf *configFlags) floatFlag(fs *pflag.FlagSet, name, usage string, field func(*theme.Config) *float64) {
	fs.Float64Var(field(&cf.values), name, *field(&cf.values), usage)
	cf.bindings[name] = func(dst *theme.Config) { *field(dst) = *field(&cf.values) }
}

func (cf *configFlags) intFlag(fs *pflag.FlagSet, name, usage string, field func(*theme.Config) *int) {
	fs.IntVar(field(&cf.values), name, *field(&cf.values), usage)
	cf.bindings[name] = func(dst *theme.Config) { *field(dst) = *field(&cf.values) }
}

func (cf *configFlags) boolFlag(fs *pflag.FlagSet, name, usage string, field func(*theme.Config) *bool) {
	fs.BoolVar(field(&cf.values), name, *field(&cf.values), usage)
	cf.bindings[name] = func(dst *theme.Config) { *field(dst) = *field(&cf.values) }
}

// registerCatalog adds the flags that select a catalog.
func (cf *configFlags) registerCatalog(fs *pflag.FlagSet) {
	fs.Var(&stepValue{step: &cf.values.RGBStepSize}, "step", "RGB grid stride, as r,g,b or a single value")
	cf.bindings["step"] = func(dst *theme.Config) { dst.RGBStepSize = cf.values.RGBStepSize }

	cf.floatFlag(fs, "min-contrast", "minimum contrast ratio a catalog colour must be able to reach",
		func(c *theme.Config) *float64 { return &c.MinContrastRatio })
	cf.floatFlag(fs, "bucket-width", "luminance index bucket width",
		func(c *theme.Config) *float64 { return &c.LuminanceBucketWidth })
}

// registerSearch adds the flags that tune shade and palette selection.
func (cf *configFlags) registerSearch(fs *pflag.FlagSet) {
	cf.floatFlag(fs, "shade-contrast", "contrast ratio between neighbouring primary shades",
		func(c *theme.Config) *float64 { return &c.ShadeContrastRatio })
	cf.floatFlag(fs, "shade-range", "luminance search window for each shade",
		func(c *theme.Config) *float64 { return &c.ShadeSearchRange })
	cf.floatFlag(fs, "hue-tolerance", "maximum hue distance in degrees between a shade and the seed",
		func(c *theme.Config) *float64 { return &c.HueTolerance })
	cf.boolFlag(fs, "strict-hue", "fail instead of warning when a shade exceeds the hue tolerance",
		func(c *theme.Config) *bool { return &c.StrictHue })
	cf.floatFlag(fs, "background-contrast", "contrast ratio between the light background and the text",
		func(c *theme.Config) *float64 { return &c.BackgroundContrastRatio })
	cf.floatFlag(fs, "dark-text-contrast", "contrast ratio between the dark background and its text",
		func(c *theme.Config) *float64 { return &c.DarkTextContrastRatio })
	cf.intFlag(fs, "dark-text-rank", "which dark text candidate to use, 0 being the best match",
		func(c *theme.Config) *int { return &c.DarkTextRank })
	cf.floatFlag(fs, "triadic-offset", "hue offset in degrees for the secondary colour",
		func(c *theme.Config) *float64 { return &c.TriadicOffset })
}

// apply copies every flag that was set on fs into dst.
func (cf *configFlags) apply(fs *pflag.FlagSet, dst *theme.Config) {
	fs.Visit(func(f *pflag.Flag) {
		if bind, ok := cf.bindings[f.Name]; ok {
			bind(dst)
		}
	})
}

// resolveConfig layers defaults, the config file, TINCTURE_* environment variables and
// command-line flags, in that order.
func resolveConfig(opts *rootOptions, cf *configFlags, fs *pflag.FlagSet) (theme.Config, error) {
	cfg := theme.DefaultConfig()

	if opts.configPath != "" {
		if err := cfg.LoadConfigFile(opts.configPath); err != nil {
			return theme.Config{}, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return theme.Config{}, err
	}

	cf.apply(fs, &cfg)

	if err := cfg.Validate(); err != nil {
		return theme.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
