package transcoder

import (
	"encoding/json"
	"math/big"

	"github.com/wippyai/bincode/errors"
)

// Unit is the decoded value of a unit descriptor.
type Unit struct{}

// Optional marks a present option value. Decoders produce it only when
// the option element is itself an option, so that Some(None) and None
// stay distinct.
type Optional struct {
	Value any
}

// MapEntry is one key/value pair of a map in wire order.
type MapEntry struct {
	Key   any
	Value any
}

// VariantValue selects a variant candidate by index.
type VariantValue struct {
	Value any
	Index uint32
}

// Uint128 is an unsigned 128-bit integer split into halves.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Int128 is a two's complement 128-bit integer. The sign lives in Hi.
type Int128 struct {
	Hi int64
	Lo uint64
}

var (
	two64      = new(big.Int).Lsh(big.NewInt(1), 64)
	two128     = new(big.Int).Lsh(big.NewInt(1), 128)
	maxUint128 = new(big.Int).Sub(two128, big.NewInt(1))
	maxInt128  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	mask64     = new(big.Int).Sub(two64, big.NewInt(1))
)

func (u Uint128) ToBig() *big.Int {
	n := new(big.Int).SetUint64(u.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string {
	return u.ToBig().String()
}

// Uint128FromBig fails when n is negative or wider than 128 bits.
func Uint128FromBig(n *big.Int) (Uint128, bool) {
	if n == nil || n.Sign() < 0 || n.Cmp(maxUint128) > 0 {
		return Uint128{}, false
	}
	lo := new(big.Int).And(n, mask64).Uint64()
	hi := new(big.Int).Rsh(n, 64).Uint64()
	return Uint128{Hi: hi, Lo: lo}, true
}

func (i Int128) ToBig() *big.Int {
	n := new(big.Int).SetInt64(i.Hi)
	n.Lsh(n, 64)
	return n.Add(n, new(big.Int).SetUint64(i.Lo))
}

func (i Int128) String() string {
	return i.ToBig().String()
}

// Int128FromBig fails when n lies outside [-2^127, 2^127-1].
func Int128FromBig(n *big.Int) (Int128, bool) {
	if n == nil || n.Cmp(minInt128) < 0 || n.Cmp(maxInt128) > 0 {
		return Int128{}, false
	}
	u := new(big.Int).Set(n)
	if u.Sign() < 0 {
		u.Add(u, two128)
	}
	lo := new(big.Int).And(u, mask64).Uint64()
	hi := new(big.Int).Rsh(u, 64).Uint64()
	return Int128{Hi: int64(hi), Lo: lo}, true
}

func coerceUint128(value any, path []string) (Uint128, error) {
	switch v := value.(type) {
	case Uint128:
		return v, nil
	case *big.Int:
		if u, ok := Uint128FromBig(v); ok {
			return u, nil
		}
		return Uint128{}, errors.Overflow(errors.PhaseEncode, path, v, "u128")
	case json.Number:
		return coerceUint128(string(v), path)
	case string:
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return Uint128{}, errors.TypeMismatch(errors.PhaseEncode, path, "string", "u128")
		}
		return coerceUint128(n, path)
	}
	u, numeric, inRange := coerceUnsigned(value, 64)
	if !numeric {
		return Uint128{}, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u128")
	}
	if !inRange {
		return Uint128{}, errors.Overflow(errors.PhaseEncode, path, value, "u128")
	}
	return Uint128{Lo: u}, nil
}

func coerceInt128(value any, path []string) (Int128, error) {
	switch v := value.(type) {
	case Int128:
		return v, nil
	case *big.Int:
		if i, ok := Int128FromBig(v); ok {
			return i, nil
		}
		return Int128{}, errors.Overflow(errors.PhaseEncode, path, v, "s128")
	case json.Number:
		return coerceInt128(string(v), path)
	case string:
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return Int128{}, errors.TypeMismatch(errors.PhaseEncode, path, "string", "s128")
		}
		return coerceInt128(n, path)
	case uint64:
		return Int128{Lo: v}, nil
	case uint:
		return Int128{Lo: uint64(v)}, nil
	}
	s, numeric, inRange := coerceSigned(value, 64)
	if !numeric {
		return Int128{}, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "s128")
	}
	if !inRange {
		return Int128{}, errors.Overflow(errors.PhaseEncode, path, value, "s128")
	}
	hi := int64(0)
	if s < 0 {
		hi = -1
	}
	return Int128{Hi: hi, Lo: uint64(s)}, nil
}
