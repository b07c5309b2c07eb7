package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/bincode/device"
	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
)

func TestAnnotate(t *testing.T) {
	color := transcoder.Enum("Color", "red", "green")
	shape := transcoder.Variant("Shape",
		transcoder.C("circle", transcoder.F64),
		transcoder.C("tag", color),
	)

	tests := []struct {
		name  string
		typ   *transcoder.Type
		value any
		want  any
	}{
		{"enum", color, uint32(1), "green"},
		{"enum out of range", color, uint32(7), uint32(7)},
		{"u128", transcoder.U128, transcoder.Uint128{Hi: 1}, "18446744073709551616"},
		{"s128", transcoder.S128, transcoder.Int128{Hi: -1, Lo: ^uint64(0)}, "-1"},
		{"bytes", transcoder.Bytes, []byte{0xde, 0xad}, "dead"},
		{"char", transcoder.Char, 'é', "é"},
		{"unit", transcoder.UnitType, transcoder.Unit{}, nil},
		{"none", transcoder.Option(color), nil, nil},
		{"some", transcoder.Option(color), uint32(0), "red"},
		{
			"nested some",
			transcoder.Option(transcoder.Option(color)),
			transcoder.Optional{Value: uint32(1)},
			"green",
		},
		{
			"sequence",
			transcoder.Sequence(color),
			[]any{uint32(0), uint32(1)},
			[]any{"red", "green"},
		},
		{
			"tuple",
			transcoder.Tuple(transcoder.U8, color),
			[]any{uint8(3), uint32(0)},
			[]any{uint8(3), "red"},
		},
		{
			"map",
			transcoder.Map(transcoder.String, color),
			[]transcoder.MapEntry{{Key: "a", Value: uint32(1)}},
			[]any{map[string]any{"key": "a", "value": "green"}},
		},
		{
			"variant",
			shape,
			map[string]any{"tag": uint32(0)},
			map[string]any{"tag": "red"},
		},
		{
			"record",
			transcoder.Record("Pixel",
				transcoder.F("x", transcoder.U16),
				transcoder.F("color", color),
			),
			map[string]any{"x": uint16(4), "color": uint32(1)},
			map[string]any{"x": uint16(4), "color": "green"},
		},
		{"passthrough", transcoder.U32, uint32(9), uint32(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annotate(tt.value, tt.typ)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("annotate = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	doc := map[string]any{"width": 1280, "name": "evk4"}

	t.Run("json", func(t *testing.T) {
		out, err := render(doc, formatJSON)
		if err != nil {
			t.Fatal(err)
		}
		want := "{\n  \"name\": \"evk4\",\n  \"width\": 1280\n}\n"
		if string(out) != want {
			t.Errorf("render = %q, want %q", out, want)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := render(doc, formatYAML)
		if err != nil {
			t.Fatal(err)
		}
		want := "name: evk4\nwidth: 1280\n"
		if string(out) != want {
			t.Errorf("render = %q, want %q", out, want)
		}
	})

	t.Run("cbor", func(t *testing.T) {
		out, err := render(doc, formatCBOR)
		if err != nil {
			t.Fatal(err)
		}
		var back map[string]any
		if err := cbor.Unmarshal(out, &back); err != nil {
			t.Fatal(err)
		}
		if back["name"] != "evk4" || back["width"] != uint64(1280) {
			t.Errorf("cbor round trip = %#v", back)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := render(doc, "toml")
		if !errors.HasKind(err, errors.KindUnsupported) {
			t.Errorf("expected unsupported, got %v", err)
		}
	})
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out strings.Builder
	err := run(args, strings.NewReader(""), &out)
	return out.String(), err
}

func TestRunDecode(t *testing.T) {
	out, err := runCommand(t, "decode", "--record", "properties", "--hex-input", "0005d002")
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"height\": 720,\n  \"width\": 1280\n}\n"
	if out != want {
		t.Errorf("decode = %q, want %q", out, want)
	}
}

func TestRunEncodeThenDecode(t *testing.T) {
	encoded, err := runCommand(t, "encode", "--device", "evk4", "--hex")
	if err != nil {
		t.Fatal(err)
	}
	hexData := strings.TrimSpace(encoded)
	if len(hexData) != 445*2 {
		t.Fatalf("encoded %d hex digits, want %d", len(hexData), 445*2)
	}

	out, err := runCommand(t, "decode", "--device", "evk4", "--format", "yaml", "--hex-input", hexData)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"clock: internal\n", "enable_output: true\n", "rate_limiter: null\n", "pr: 124\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("decoded YAML missing %q:\n%s", want, out)
		}
	}
}

func TestRunInspect(t *testing.T) {
	out, err := runCommand(t, "inspect", "--record", "properties", "--hex-input", "0005d002")
	if err != nil {
		t.Fatal(err)
	}
	first, rest, _ := strings.Cut(out, "\n")
	want := "Properties " + transcoder.FingerprintOf(device.PropertiesType).Short()
	if first != want {
		t.Errorf("header = %q, want %q", first, want)
	}
	if rest != "height: 720\nwidth: 1280\n" {
		t.Errorf("body = %q", rest)
	}
}

func TestRunSchema(t *testing.T) {
	out, err := runCommand(t, "schema", "--device", "evk3_hd")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"device:      Prophesee EVK3 HD (prophesee_evk3_hd)\n",
		"sensor:      1280x720\n",
		"descriptor:  record Evk3HdConfiguration{",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("schema output missing %q:\n%s", want, out)
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind errors.Kind
	}{
		{"missing command", nil, errors.KindInvalidInput},
		{"unknown command", []string{"frobnicate"}, errors.KindNotFound},
		{"unknown device", []string{"schema", "--device", "davis346"}, errors.KindNotFound},
		{"unknown record", []string{"decode", "--record", "events", "--hex-input", "00"}, errors.KindNotFound},
		{"bad hex", []string{"decode", "--record", "properties", "--hex-input", "zz"}, errors.KindInvalidInput},
		{"trailing bytes", []string{"decode", "--record", "properties", "--hex-input", "0005d00200"}, errors.KindTrailingBytes},
		{"short input", []string{"decode", "--record", "properties", "--hex-input", "0005"}, errors.KindInputTooShort},
		{"bad format", []string{"decode", "--record", "properties", "--format", "toml", "--hex-input", "0005d002"}, errors.KindUnsupported},
		{"missing config file", []string{"encode", "--config", "does-not-exist.yaml"}, errors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			if !errors.HasKind(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}
