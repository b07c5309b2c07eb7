package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/bincode/errors"
)

func TestParseConfigurationYAML(t *testing.T) {
	doc := `
type: prophesee_evk4
biases:
  diff_on: 0x70
  diff_off: 60
x_mask: [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 18446744073709551615]
clock: external
rate_limiter:
  reference_period_us: 200
  maximum_events_per_period: 4000
`
	cfg, err := ParseConfiguration([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	evk4, ok := cfg.(*Evk4Configuration)
	if !ok {
		t.Fatalf("got %T", cfg)
	}

	want := DefaultEvk4Configuration()
	want.Biases.DiffOn = 0x70
	want.Biases.DiffOff = 60
	want.XMask[0] = 1
	want.XMask[19] = 1<<64 - 1
	want.Clock = ClockExternal
	want.RateLimiter = &RateLimiter{ReferencePeriodUs: 200, MaximumEventsPerPeriod: 4000}

	if evk4.Biases != want.Biases {
		t.Errorf("biases = %+v", evk4.Biases)
	}
	if evk4.XMask != want.XMask {
		t.Errorf("x_mask = %v", evk4.XMask)
	}
	if evk4.Clock != ClockExternal {
		t.Errorf("clock = %s", evk4.Clock)
	}
	if evk4.RateLimiter == nil || *evk4.RateLimiter != *want.RateLimiter {
		t.Errorf("rate_limiter = %+v", evk4.RateLimiter)
	}
	if !evk4.EnableOutput || !evk4.EnableExternalTrigger {
		t.Error("defaults lost")
	}
}

func TestParseConfigurationJSONC(t *testing.T) {
	doc := `{
	// bench camera
	"type": "evk3_hd",
	"biases": {"blk": 120, "fo_n": 2,},
	"mask_intersection_only": true, /* trailing comma below */
}`
	cfg, err := ParseConfiguration([]byte(doc), FormatJSONC)
	if err != nil {
		t.Fatal(err)
	}
	evk3, ok := cfg.(*Evk3HdConfiguration)
	if !ok {
		t.Fatalf("got %T", cfg)
	}
	if evk3.Biases.Blk != 120 || evk3.Biases.FoN != 2 || !evk3.MaskIntersectionOnly {
		t.Errorf("got %+v", evk3)
	}
	if evk3.Biases.Pr != 0x69 {
		t.Errorf("default pr lost: %#x", evk3.Biases.Pr)
	}
}

func TestParseConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
		kind   errors.Kind
	}{
		{"missing type", `biases: {pr: 1}`, FormatYAML, errors.KindFieldMissing},
		{"unknown device", `type: davis346`, FormatYAML, errors.KindNotFound},
		{"unknown field", "type: evk4\nexposure: 3", FormatYAML, errors.KindFieldUnknown},
		{"bias overflow", "type: evk4\nbiases: {pr: 300}", FormatYAML, errors.KindOverflow},
		{"bad clock", "type: evk4\nclock: lunar", FormatYAML, errors.KindInvalidVariant},
		{"short mask", "type: evk4\ny_mask: [1, 2]", FormatYAML, errors.KindTypeMismatch},
		{"partial rate limiter", "type: evk4\nrate_limiter: {reference_period_us: 1}", FormatYAML, errors.KindFieldMissing},
		{"negative bias", `{"type": "evk4", "biases": {"hpf": -1}}`, FormatJSON, errors.KindOverflow},
		{"broken json", `{"type": `, FormatJSON, errors.KindInvalidInput},
		{"unknown format", `type: evk4`, Format("toml"), errors.KindUnsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfiguration([]byte(tc.doc), tc.format)
			if !errors.HasKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "evk4.yml")
	if err := os.WriteFile(yamlPath, []byte("type: prophesee_evk4\nenable_output: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfiguration(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.(*Evk4Configuration).EnableOutput {
		t.Error("enable_output override ignored")
	}

	if _, err := LoadConfiguration(filepath.Join(dir, "missing.yaml")); !errors.HasKind(err, errors.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
	if _, err := LoadConfiguration(filepath.Join(dir, "evk4.toml")); !errors.HasKind(err, errors.KindUnsupported) {
		t.Errorf("expected unsupported, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":  FormatYAML,
		"a.YML":   FormatYAML,
		"a.json":  FormatJSON,
		"a.jsonc": FormatJSONC,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v", path, got, err)
		}
	}
}
