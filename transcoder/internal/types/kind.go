package types

// Kind is ordered by dispatch priority: primitives, then containers,
// then enum, variant and record.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindS8
	KindS16
	KindS32
	KindS64
	KindS128
	KindF32
	KindF64
	KindUnit
	KindChar
	KindString
	KindBytes
	KindSequence
	KindTuple
	KindOption
	KindMap
	KindEnum
	KindVariant
	KindRecord
)

var kindNames = [...]string{
	KindBool:     "bool",
	KindU8:       "u8",
	KindU16:      "u16",
	KindU32:      "u32",
	KindU64:      "u64",
	KindU128:     "u128",
	KindS8:       "s8",
	KindS16:      "s16",
	KindS32:      "s32",
	KindS64:      "s64",
	KindS128:     "s128",
	KindF32:      "f32",
	KindF64:      "f64",
	KindUnit:     "unit",
	KindChar:     "char",
	KindString:   "string",
	KindBytes:    "bytes",
	KindSequence: "sequence",
	KindTuple:    "tuple",
	KindOption:   "option",
	KindMap:      "map",
	KindEnum:     "enum",
	KindVariant:  "variant",
	KindRecord:   "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k <= KindBytes
}

// IsContainer reports whether entering a value of this kind consumes
// depth budget.
func (k Kind) IsContainer() bool {
	switch k {
	case KindSequence, KindTuple, KindOption, KindMap, KindVariant, KindRecord:
		return true
	default:
		return false
	}
}

// IsLengthPrefixed reports whether the encoding starts with a u64 length.
func (k Kind) IsLengthPrefixed() bool {
	switch k {
	case KindString, KindBytes, KindSequence, KindMap:
		return true
	default:
		return false
	}
}

// FixedWidth returns the encoded width of fixed-width scalar kinds, or 0
// with ok=false for everything else. Unit is fixed with width 0.
func (k Kind) FixedWidth() (int, bool) {
	switch k {
	case KindBool, KindU8, KindS8:
		return 1, true
	case KindU16, KindS16:
		return 2, true
	case KindU32, KindS32, KindF32, KindEnum:
		return 4, true
	case KindU64, KindS64, KindF64:
		return 8, true
	case KindU128, KindS128:
		return 16, true
	case KindUnit:
		return 0, true
	default:
		return 0, false
	}
}
