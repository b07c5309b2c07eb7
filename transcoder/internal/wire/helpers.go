package wire

import (
	"math"
	"reflect"
)

// MaxLength is the largest length prefix accepted for strings, byte
// arrays, sequences and maps.
const MaxLength = 1<<31 - 1

func SafeMulU64(a, b uint64) (uint64, bool) {
	if b != 0 && a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU64(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// ValidateChar rejects surrogates (0xD800-0xDFFF) and values >= 0x110000.
func ValidateChar(r rune) bool {
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	if r < 0 || r >= 0x110000 {
		return false
	}
	return true
}

// UnsignedMax returns the largest value representable in bits.
func UnsignedMax(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(bits) - 1
}

// SignedRange returns the inclusive bounds of a two's complement integer.
func SignedRange(bits int) (minVal, maxVal int64) {
	if bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	maxVal = 1<<uint(bits-1) - 1
	return -maxVal - 1, maxVal
}
