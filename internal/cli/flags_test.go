package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/tincture/internal/catalog"
)

func TestStepValue(t *testing.T) {
	var step catalog.Step
	v := &stepValue{step: &step}

	if err := v.Set("5,5,17"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if step != (catalog.Step{5, 5, 17}) || v.String() != "5,5,17" {
		t.Errorf("step = %v, String() = %q", step, v.String())
	}

	if err := v.Set("17"); err != nil || step != (catalog.Step{17, 17, 17}) {
		t.Errorf("Set(17) = %v, step %v", err, step)
	}

	for _, bad := range []string{"0", "1,2", "a,b,c", "256"} {
		if err := v.Set(bad); err == nil {
			t.Errorf("Set(%q) expected error", bad)
		}
	}

	if v.Type() != "r,g,b" {
		t.Errorf("Type() = %q", v.Type())
	}
	if (&stepValue{}).String() != "" {
		t.Error("nil step should print empty")
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "shade_contrast_ratio: 3.2\nhue_tolerance: 20\ntriadic_offset: 90\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TINCTURE_SHADE_CONTRAST_RATIO", "3.5")
	t.Setenv("TINCTURE_HUE_TOLERANCE", "25")

	cf := newConfigFlags()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cf.registerCatalog(fs)
	cf.registerSearch(fs)
	if err := fs.Parse([]string{"--hue-tolerance", "30", "--step", "5,5,17"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(&rootOptions{configPath: path}, cf, fs)
	if err != nil {
		t.Fatalf("resolveConfig() error: %v", err)
	}

	if cfg.TriadicOffset != 90 {
		t.Errorf("TriadicOffset = %v, want 90 from file", cfg.TriadicOffset)
	}
	if cfg.ShadeContrastRatio != 3.5 {
		t.Errorf("ShadeContrastRatio = %v, want 3.5 from env", cfg.ShadeContrastRatio)
	}
	if cfg.HueTolerance != 30 {
		t.Errorf("HueTolerance = %v, want 30 from flag", cfg.HueTolerance)
	}
	if cfg.RGBStepSize != (catalog.Step{5, 5, 17}) {
		t.Errorf("RGBStepSize = %v", cfg.RGBStepSize)
	}
	if cfg.DarkTextRank != 1 || cfg.BackgroundContrastRatio != 9.2 {
		t.Errorf("unset values should keep their defaults: %+v", cfg)
	}
}

func TestResolveConfigBadEnv(t *testing.T) {
	t.Setenv("TINCTURE_STRICT_HUE", "maybe")

	cf := newConfigFlags()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cf.registerSearch(fs)

	if _, err := resolveConfig(&rootOptions{}, cf, fs); err == nil {
		t.Error("expected error for invalid TINCTURE_STRICT_HUE")
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		opts rootOptions
		want hclog.Level
	}{
		{rootOptions{}, hclog.Warn},
		{rootOptions{verbose: true}, hclog.Debug},
		{rootOptions{quiet: true}, hclog.Off},
		{rootOptions{verbose: true, quiet: true}, hclog.Debug},
	}
	for _, tt := range tests {
		if got := tt.opts.logger(os.Stderr).GetLevel(); got != tt.want {
			t.Errorf("level = %s, want %s", got, tt.want)
		}
	}
}
