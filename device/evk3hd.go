package device

import (
	"github.com/wippyai/bincode/transcoder"
)

// Evk3HdBiases are the analog bias currents of the EVK3 HD sensor.
type Evk3HdBiases struct {
	Pr      uint8
	FoP     uint8
	FoN     uint8
	Hpf     uint8
	DiffOn  uint8
	Diff    uint8
	DiffOff uint8
	Refr    uint8
	Reqpuy  uint8
	Blk     uint8
}

var evk3HdBiasFields = []u8Field[Evk3HdBiases]{
	{"pr", func(b *Evk3HdBiases) *uint8 { return &b.Pr }},
	{"fo_p", func(b *Evk3HdBiases) *uint8 { return &b.FoP }},
	{"fo_n", func(b *Evk3HdBiases) *uint8 { return &b.FoN }},
	{"hpf", func(b *Evk3HdBiases) *uint8 { return &b.Hpf }},
	{"diff_on", func(b *Evk3HdBiases) *uint8 { return &b.DiffOn }},
	{"diff", func(b *Evk3HdBiases) *uint8 { return &b.Diff }},
	{"diff_off", func(b *Evk3HdBiases) *uint8 { return &b.DiffOff }},
	{"refr", func(b *Evk3HdBiases) *uint8 { return &b.Refr }},
	{"reqpuy", func(b *Evk3HdBiases) *uint8 { return &b.Reqpuy }},
	{"blk", func(b *Evk3HdBiases) *uint8 { return &b.Blk }},
}

type Evk3HdConfiguration struct {
	RateLimiter          *RateLimiter
	Biases               Evk3HdBiases
	XMask                [20]uint64
	YMask                [12]uint64
	MaskIntersectionOnly bool
}

var (
	Evk3HdBiasesType = biasesType("Evk3HdBiases", evk3HdBiasFields)

	Evk3HdConfigurationType = transcoder.Record("Evk3HdConfiguration",
		transcoder.F("biases", Evk3HdBiasesType),
		transcoder.F("x_mask", transcoder.Repeat(20, transcoder.U64)),
		transcoder.F("y_mask", transcoder.Repeat(12, transcoder.U64)),
		transcoder.F("mask_intersection_only", transcoder.Bool),
		transcoder.F("rate_limiter", transcoder.Option(RateLimiterType)),
	)
)

func DefaultEvk3HdBiases() Evk3HdBiases {
	return Evk3HdBiases{
		Pr:      0x69,
		FoP:     0x4A,
		FoN:     0x00,
		Hpf:     0x00,
		DiffOn:  0x73,
		Diff:    0x50,
		DiffOff: 0x34,
		Refr:    0x44,
		Reqpuy:  0x94,
		Blk:     0x78,
	}
}

func DefaultEvk3HdConfiguration() *Evk3HdConfiguration {
	return &Evk3HdConfiguration{Biases: DefaultEvk3HdBiases()}
}

func (c *Evk3HdConfiguration) Type() Type {
	return TypeEvk3Hd
}

func (c *Evk3HdConfiguration) Value() map[string]any {
	return map[string]any{
		"biases":                 u8Value(evk3HdBiasFields, &c.Biases),
		"x_mask":                 wordsValue(c.XMask[:]),
		"y_mask":                 wordsValue(c.YMask[:]),
		"mask_intersection_only": c.MaskIntersectionOnly,
		"rate_limiter":           rateLimiterValue(c.RateLimiter),
	}
}

func (c *Evk3HdConfiguration) Serialize() ([]byte, error) {
	return transcoder.Encode(c.Value(), Evk3HdConfigurationType)
}

func Evk3HdConfigurationFromValue(v any) (*Evk3HdConfiguration, error) {
	var r treeReader
	m := r.record(v, nil)

	c := &Evk3HdConfiguration{}
	if b, ok := r.field(m, "biases", nil); ok {
		c.Biases = u8FromValue(&r, evk3HdBiasFields, b, []string{"biases"})
	}
	r.words(m, "x_mask", nil, c.XMask[:])
	r.words(m, "y_mask", nil, c.YMask[:])
	c.MaskIntersectionOnly = read[bool](&r, m, "mask_intersection_only", nil)
	c.RateLimiter = rateLimiterFromValue(&r, m, nil)

	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}

func DefaultEvk3HdProperties() Properties {
	return Properties{Width: 1280, Height: 720}
}
