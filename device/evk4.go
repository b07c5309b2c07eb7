package device

import (
	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder"
)

// Evk4Biases are the analog bias currents of the IMX636 sensor.
type Evk4Biases struct {
	Pr         uint8
	Fo         uint8
	Hpf        uint8
	DiffOn     uint8
	Diff       uint8
	DiffOff    uint8
	Inv        uint8
	Refr       uint8
	Reqpuy     uint8
	Reqpux     uint8
	Sendreqpdy uint8
	Unknown1   uint8
	Unknown2   uint8
}

var evk4BiasFields = []u8Field[Evk4Biases]{
	{"pr", func(b *Evk4Biases) *uint8 { return &b.Pr }},
	{"fo", func(b *Evk4Biases) *uint8 { return &b.Fo }},
	{"hpf", func(b *Evk4Biases) *uint8 { return &b.Hpf }},
	{"diff_on", func(b *Evk4Biases) *uint8 { return &b.DiffOn }},
	{"diff", func(b *Evk4Biases) *uint8 { return &b.Diff }},
	{"diff_off", func(b *Evk4Biases) *uint8 { return &b.DiffOff }},
	{"inv", func(b *Evk4Biases) *uint8 { return &b.Inv }},
	{"refr", func(b *Evk4Biases) *uint8 { return &b.Refr }},
	{"reqpuy", func(b *Evk4Biases) *uint8 { return &b.Reqpuy }},
	{"reqpux", func(b *Evk4Biases) *uint8 { return &b.Reqpux }},
	{"sendreqpdy", func(b *Evk4Biases) *uint8 { return &b.Sendreqpdy }},
	{"unknown_1", func(b *Evk4Biases) *uint8 { return &b.Unknown1 }},
	{"unknown_2", func(b *Evk4Biases) *uint8 { return &b.Unknown2 }},
}

// Clock selects the EVK4 timestamp source.
type Clock uint32

const (
	ClockInternal Clock = iota
	ClockInternalWithOutputEnabled
	ClockExternal
)

var ClockType = transcoder.Enum("Clock", "internal", "internal_with_output_enabled", "external")

func (c Clock) String() string {
	if int(c) < len(ClockType.Members) {
		return ClockType.Members[c]
	}
	return "unknown"
}

// Evk4Configuration is the full chip configuration of a Prophesee EVK4.
type Evk4Configuration struct {
	RateLimiter           *RateLimiter
	Biases                Evk4Biases
	XMask                 [20]uint64
	YMask                 [12]uint64
	PixelMask             [21]uint64
	Clock                 Clock
	MaskIntersectionOnly  bool
	EnableExternalTrigger bool
	EnableOutput          bool
}

var (
	Evk4BiasesType = biasesType("Evk4Biases", evk4BiasFields)

	Evk4ConfigurationType = transcoder.Record("Evk4Configuration",
		transcoder.F("biases", Evk4BiasesType),
		transcoder.F("x_mask", transcoder.Repeat(20, transcoder.U64)),
		transcoder.F("y_mask", transcoder.Repeat(12, transcoder.U64)),
		transcoder.F("pixel_mask", transcoder.Repeat(21, transcoder.U64)),
		transcoder.F("mask_intersection_only", transcoder.Bool),
		transcoder.F("enable_external_trigger", transcoder.Bool),
		transcoder.F("clock", ClockType),
		transcoder.F("rate_limiter", transcoder.Option(RateLimiterType)),
		transcoder.F("enable_output", transcoder.Bool),
	)
)

func biasesType[T any](name string, fields []u8Field[T]) *transcoder.Type {
	fs := make([]transcoder.Field, len(fields))
	for i, f := range fields {
		fs[i] = transcoder.F(f.name, transcoder.U8)
	}
	return transcoder.Record(name, fs...)
}

func DefaultEvk4Biases() Evk4Biases {
	return Evk4Biases{
		Pr:         0x7C,
		Fo:         0x53,
		Hpf:        0x00,
		DiffOn:     0x66,
		Diff:       0x4D,
		DiffOff:    0x49,
		Inv:        0x5B,
		Refr:       0x14,
		Reqpuy:     0x8C,
		Reqpux:     0x7C,
		Sendreqpdy: 0x94,
		Unknown1:   0x74,
		Unknown2:   0x51,
	}
}

// DefaultEvk4Configuration returns the factory configuration: default
// biases, no masked pixels, internal clock and no rate limit.
func DefaultEvk4Configuration() *Evk4Configuration {
	return &Evk4Configuration{
		Biases:                DefaultEvk4Biases(),
		EnableExternalTrigger: true,
		Clock:                 ClockInternal,
		EnableOutput:          true,
	}
}

func (c *Evk4Configuration) Type() Type {
	return TypeEvk4
}

func (c *Evk4Configuration) Value() map[string]any {
	return map[string]any{
		"biases":                  u8Value(evk4BiasFields, &c.Biases),
		"x_mask":                  wordsValue(c.XMask[:]),
		"y_mask":                  wordsValue(c.YMask[:]),
		"pixel_mask":              wordsValue(c.PixelMask[:]),
		"mask_intersection_only":  c.MaskIntersectionOnly,
		"enable_external_trigger": c.EnableExternalTrigger,
		"clock":                   uint32(c.Clock),
		"rate_limiter":            rateLimiterValue(c.RateLimiter),
		"enable_output":           c.EnableOutput,
	}
}

func (c *Evk4Configuration) Serialize() ([]byte, error) {
	return transcoder.Encode(c.Value(), Evk4ConfigurationType)
}

// Evk4ConfigurationFromValue converts a decoded Evk4ConfigurationType tree.
func Evk4ConfigurationFromValue(v any) (*Evk4Configuration, error) {
	var r treeReader
	m := r.record(v, nil)

	c := &Evk4Configuration{}
	if b, ok := r.field(m, "biases", nil); ok {
		c.Biases = u8FromValue(&r, evk4BiasFields, b, []string{"biases"})
	}
	r.words(m, "x_mask", nil, c.XMask[:])
	r.words(m, "y_mask", nil, c.YMask[:])
	r.words(m, "pixel_mask", nil, c.PixelMask[:])
	c.MaskIntersectionOnly = read[bool](&r, m, "mask_intersection_only", nil)
	c.EnableExternalTrigger = read[bool](&r, m, "enable_external_trigger", nil)
	c.Clock = Clock(read[uint32](&r, m, "clock", nil))
	c.RateLimiter = rateLimiterFromValue(&r, m, nil)
	c.EnableOutput = read[bool](&r, m, "enable_output", nil)

	if r.err != nil {
		return nil, r.err
	}
	if int(c.Clock) >= len(ClockType.Members) {
		return nil, errors.InvalidDiscriminant(errors.PhaseDecode, []string{"clock"}, uint32(c.Clock), len(ClockType.Members))
	}
	return c, nil
}

func DefaultEvk4Properties() Properties {
	return Properties{Width: 1280, Height: 720}
}
