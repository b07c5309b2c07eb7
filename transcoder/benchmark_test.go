package transcoder

import (
	"testing"
)

var benchConfig = Record("Config",
	F("biases", Record("Biases", F("pr", U8), F("fo", U8), F("hpf", U8), F("diff_on", U8))),
	F("x_mask", Repeat(20, U64)),
	F("rate_limiter", Option(Record("RateLimiter", F("reference_period_us", U16), F("maximum_events_per_period", U32)))),
	F("clock", Enum("Clock", "internal", "internal_with_output_enabled", "external")),
)

func benchConfigValue() map[string]any {
	mask := make([]any, 20)
	for i := range mask {
		mask[i] = uint64(0)
	}
	return map[string]any{
		"biases":       map[string]any{"pr": uint8(0x7C), "fo": uint8(0x53), "hpf": uint8(0), "diff_on": uint8(0x66)},
		"x_mask":       mask,
		"rate_limiter": nil,
		"clock":        "internal",
	}
}

func BenchmarkEncode_U32(b *testing.B) {
	enc := NewEncoder()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Reset()
		_ = enc.Encode(uint32(42), U32)
	}
}

func BenchmarkEncode_String_Large(b *testing.B) {
	enc := NewEncoder()
	s := string(make([]byte, 10000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Reset()
		_ = enc.Encode(s, String)
	}
}

func BenchmarkEncode_Record(b *testing.B) {
	enc := NewEncoder()
	value := benchConfigValue()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Reset()
		_ = enc.Encode(value, benchConfig)
	}
}

func BenchmarkEncode_Record_Pooled(b *testing.B) {
	value := benchConfigValue()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(value, benchConfig)
	}
}

func BenchmarkDecode_Record(b *testing.B) {
	data, err := Encode(benchConfigValue(), benchConfig)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecodeExact(data, benchConfig)
	}
}

func BenchmarkDecode_Sequence_U64(b *testing.B) {
	items := make([]uint64, 1024)
	data, err := Encode(items, Sequence(U64))
	if err != nil {
		b.Fatal(err)
	}
	typ := Sequence(U64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecodeExact(data, typ)
	}
}

func BenchmarkCanonicalizeMap(b *testing.B) {
	entries := make([]MapEntry, 256)
	for i := range entries {
		entries[i] = MapEntry{Key: uint32(len(entries) - i), Value: nil}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = CanonicalizeMap(entries, U32)
	}
}
