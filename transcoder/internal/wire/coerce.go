package wire

import (
	"encoding/json"
	"math"
	"strconv"
)

// 2^64 as a float; float64(math.MaxUint64) rounds up to this value.
const twoTo64 = 18446744073709551616.0

// CoerceToUint32 handles JSON decoded numbers (float64) and other numeric types.
func CoerceToUint32(value any) (uint32, bool) {
	v, ok := CoerceToUint64(value)
	if !ok || v > math.MaxUint32 {
		return 0, false
	}
	return uint32(v), true
}

func CoerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < twoTo64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < twoTo64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	case json.Number:
		if n, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return CoerceToUint64(f)
		}
	}
	return 0, false
}

func CoerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < -math.MinInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < -math.MinInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return CoerceToInt64(f)
		}
	}
	return 0, false
}

// CoerceToFloat64 accepts any Go numeric type. Integers wider than the
// float mantissa lose precision.
func CoerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// CoerceUnsigned coerces value and checks it fits in bits.
// inRange is false when value is numeric but out of range.
func CoerceUnsigned(value any, bits int) (v uint64, numeric, inRange bool) {
	if u, ok := CoerceToUint64(value); ok {
		return u, true, u <= UnsignedMax(bits)
	}
	if IsNumeric(value) {
		return 0, true, false
	}
	return 0, false, false
}

// CoerceSigned coerces value and checks it fits in bits.
func CoerceSigned(value any, bits int) (v int64, numeric, inRange bool) {
	if s, ok := CoerceToInt64(value); ok {
		lo, hi := SignedRange(bits)
		return s, true, s >= lo && s <= hi
	}
	if IsNumeric(value) {
		return 0, true, false
	}
	return 0, false, false
}

// IsNumeric reports whether value is a Go number or a json.Number.
func IsNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}
