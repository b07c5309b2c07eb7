package wire

import (
	"math"
	"testing"
)

func TestSafeMulU64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOK bool
	}{
		{"zero * zero", 0, 0, 0, true},
		{"zero * max", 0, math.MaxUint64, 0, true},
		{"max * zero", math.MaxUint64, 0, 0, true},
		{"small * small", 100, 200, 20000, true},
		{"max * one", math.MaxUint64, 1, math.MaxUint64, true},
		{"overflow", math.MaxUint64, 2, 0, false},
		{"max length * u128", MaxLength, 16, MaxLength * 16, true},
		{"edge case overflow", 1 << 32, 1 << 32, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMulU64(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeMulU64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeMulU64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSafeAddU64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOK bool
	}{
		{"zero + zero", 0, 0, 0, true},
		{"zero + max", 0, math.MaxUint64, math.MaxUint64, true},
		{"max + one", math.MaxUint64, 1, 0, false},
		{"one + max", 1, math.MaxUint64, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeAddU64(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeAddU64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeAddU64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "int"},
		{"string", "hello", "string"},
		{"slice", []int{1, 2, 3}, "[]int"},
		{"map", map[string]any{}, "map[string]interface {}"},
		{"pointer", new(int), "*int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeName(tt.input)
			if got != tt.want {
				t.Errorf("TypeName(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateChar(t *testing.T) {
	tests := []struct {
		name  string
		r     rune
		valid bool
	}{
		{"null", 0, true},
		{"ASCII A", 'A', true},
		{"Greek alpha", 'α', true},
		{"emoji", '😀', true},
		{"first surrogate", 0xD800, false},
		{"last surrogate", 0xDFFF, false},
		{"just before surrogate", 0xD7FF, true},
		{"just after surrogate", 0xE000, true},
		{"max valid codepoint", 0x10FFFF, true},
		{"first invalid codepoint", 0x110000, false},
		{"negative (as rune)", rune(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateChar(tt.r)
			if got != tt.valid {
				t.Errorf("ValidateChar(0x%X) = %v, want %v", tt.r, got, tt.valid)
			}
		})
	}
}

func TestRanges(t *testing.T) {
	if UnsignedMax(8) != 255 || UnsignedMax(16) != 65535 || UnsignedMax(64) != math.MaxUint64 {
		t.Error("UnsignedMax mismatch")
	}
	lo, hi := SignedRange(8)
	if lo != -128 || hi != 127 {
		t.Errorf("SignedRange(8) = (%d, %d)", lo, hi)
	}
	lo, hi = SignedRange(64)
	if lo != math.MinInt64 || hi != math.MaxInt64 {
		t.Errorf("SignedRange(64) = (%d, %d)", lo, hi)
	}
}
