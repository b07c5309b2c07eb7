package transcoder

import (
	"testing"

	"github.com/wippyai/bincode/errors"
	"go.bytecodealliance.org/wit"
)

func witName(s string) *string {
	return &s
}

func TestCompilerPrimitives(t *testing.T) {
	c := NewCompiler()

	tests := []struct {
		in   wit.Type
		want *Type
	}{
		{wit.Bool{}, Bool},
		{wit.U8{}, U8},
		{wit.S8{}, S8},
		{wit.U16{}, U16},
		{wit.S16{}, S16},
		{wit.U32{}, U32},
		{wit.S32{}, S32},
		{wit.U64{}, U64},
		{wit.S64{}, S64},
		{wit.F32{}, F32},
		{wit.F64{}, F64},
		{wit.Char{}, Char},
		{wit.String{}, String},
	}

	for _, tc := range tests {
		t.Run(tc.want.String(), func(t *testing.T) {
			got, err := c.Compile(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCompilerRecord(t *testing.T) {
	c := NewCompiler()

	rate := &wit.TypeDef{
		Name: witName("rate-limiter"),
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "reference-period-us", Type: wit.U16{}},
				{Name: "maximum-events-per-period", Type: wit.U32{}},
			},
		},
	}
	config := &wit.TypeDef{
		Name: witName("config"),
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "x-mask", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U64{}}}},
				{Name: "rate-limiter", Type: &wit.TypeDef{Kind: &wit.Option{Type: rate}}},
				{Name: "payload", Type: &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
			},
		},
	}

	got, err := c.Compile(config)
	if err != nil {
		t.Fatal(err)
	}
	want := "record config{x-mask: sequence<u64>, rate-limiter: option<record rate-limiter{reference-period-us: u16, maximum-events-per-period: u32}>, payload: bytes}"
	if got.String() != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	value := map[string]any{
		"x-mask":       []uint64{1, 2},
		"rate-limiter": nil,
		"payload":      []byte{9},
	}
	data := mustEncode(t, value, got)
	if _, err := DecodeExact(data, got); err != nil {
		t.Fatalf("decode compiled record: %v", err)
	}
}

func TestCompilerSnakeCase(t *testing.T) {
	c := NewCompiler(WithSnakeCaseNames())

	clock := &wit.TypeDef{
		Name: witName("clock"),
		Kind: &wit.Enum{Cases: []wit.EnumCase{
			{Name: "internal"},
			{Name: "internal-with-output-enabled"},
			{Name: "external"},
		}},
	}
	rec := &wit.TypeDef{
		Name: witName("flags"),
		Kind: &wit.Record{Fields: []wit.Field{
			{Name: "enable-output", Type: wit.Bool{}},
			{Name: "clock", Type: clock},
		}},
	}

	got, err := c.Compile(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got.FieldIndex("enable_output") != 0 {
		t.Errorf("fields = %v", got.Fields)
	}
	if e := got.Fields[1].Type; e.MemberIndex("internal_with_output_enabled") != 1 {
		t.Errorf("members = %v", e.Members)
	}
}

func TestCompilerVariantAndResult(t *testing.T) {
	c := NewCompiler()

	v := &wit.TypeDef{
		Name: witName("reading"),
		Kind: &wit.Variant{Cases: []wit.Case{
			{Name: "none"},
			{Name: "some", Type: wit.U32{}},
		}},
	}
	got, err := c.Compile(v)
	if err != nil {
		t.Fatal(err)
	}
	if want := "variant reading{none: unit, some: u32}"; got.String() != want {
		t.Errorf("variant = %s, want %s", got, want)
	}

	r := &wit.TypeDef{Kind: &wit.Result{OK: wit.U32{}}}
	got, err = c.Compile(r)
	if err != nil {
		t.Fatal(err)
	}
	if want := "variant{ok: u32, err: unit}"; got.String() != want {
		t.Errorf("result = %s, want %s", got, want)
	}
	data := mustEncode(t, map[string]any{"err": nil}, got)
	if string(data) != "\x01\x00\x00\x00" {
		t.Errorf("err case = %x", data)
	}
}

func TestCompilerTupleAndAlias(t *testing.T) {
	c := NewCompiler()

	tuple := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U32{}, wit.String{}}}}
	got, err := c.Compile(tuple)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "tuple<u32, string>" {
		t.Errorf("tuple = %s", got)
	}

	alias := &wit.TypeDef{Name: witName("timestamp"), Kind: wit.U64{}}
	got, err = c.Compile(alias)
	if err != nil {
		t.Fatal(err)
	}
	if got != U64 {
		t.Errorf("alias = %s, want u64", got)
	}
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler()
	def := &wit.TypeDef{Kind: &wit.List{Type: wit.String{}}}

	a, err := c.Compile(def)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compile(def)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same TypeDef compiled to different descriptors")
	}
}

func TestCompilerErrors(t *testing.T) {
	c := NewCompiler()

	tests := []struct {
		in   wit.Type
		name string
		kind errors.Kind
	}{
		{nil, "nil", errors.KindNilPointer},
		{&wit.TypeDef{Kind: &wit.Flags{Flags: []wit.Flag{{Name: "a"}}}}, "flags", errors.KindUnsupported},
		{&wit.TypeDef{Kind: &wit.Own{}}, "own", errors.KindUnsupported},
		{&wit.TypeDef{Kind: &wit.Borrow{}}, "borrow", errors.KindUnsupported},
		{&wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "handle", Type: &wit.TypeDef{Kind: &wit.Own{}}},
		}}}, "nested own", errors.KindUnsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Compile(tc.in)
			if !errors.HasKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}
