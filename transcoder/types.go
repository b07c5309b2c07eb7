package transcoder

import (
	"strconv"

	"github.com/wippyai/bincode/transcoder/internal/types"
)

type (
	Type  = types.Type
	Kind  = types.Kind
	Field = types.Field
	Case  = types.Case
)

const (
	KindBool     = types.KindBool
	KindU8       = types.KindU8
	KindU16      = types.KindU16
	KindU32      = types.KindU32
	KindU64      = types.KindU64
	KindU128     = types.KindU128
	KindS8       = types.KindS8
	KindS16      = types.KindS16
	KindS32      = types.KindS32
	KindS64      = types.KindS64
	KindS128     = types.KindS128
	KindF32      = types.KindF32
	KindF64      = types.KindF64
	KindUnit     = types.KindUnit
	KindChar     = types.KindChar
	KindString   = types.KindString
	KindBytes    = types.KindBytes
	KindSequence = types.KindSequence
	KindTuple    = types.KindTuple
	KindOption   = types.KindOption
	KindMap      = types.KindMap
	KindEnum     = types.KindEnum
	KindVariant  = types.KindVariant
	KindRecord   = types.KindRecord
)

// Primitive descriptors. They are shared and must not be modified.
var (
	Bool     = &Type{Kind: KindBool}
	U8       = &Type{Kind: KindU8}
	U16      = &Type{Kind: KindU16}
	U32      = &Type{Kind: KindU32}
	U64      = &Type{Kind: KindU64}
	U128     = &Type{Kind: KindU128}
	S8       = &Type{Kind: KindS8}
	S16      = &Type{Kind: KindS16}
	S32      = &Type{Kind: KindS32}
	S64      = &Type{Kind: KindS64}
	S128     = &Type{Kind: KindS128}
	F32      = &Type{Kind: KindF32}
	F64      = &Type{Kind: KindF64}
	UnitType = &Type{Kind: KindUnit}
	Char     = &Type{Kind: KindChar}
	String   = &Type{Kind: KindString}
	Bytes    = &Type{Kind: KindBytes}
)

func Sequence(elem *Type) *Type {
	return &Type{Kind: KindSequence, Elem: elem}
}

func Tuple(items ...*Type) *Type {
	return &Type{Kind: KindTuple, Items: items}
}

// Repeat returns a tuple of n copies of item, the descriptor for a
// fixed-length array.
func Repeat(n int, item *Type) *Type {
	items := make([]*Type, n)
	for i := range items {
		items[i] = item
	}
	return Tuple(items...)
}

func Option(elem *Type) *Type {
	return &Type{Kind: KindOption, Elem: elem}
}

func Map(key, value *Type) *Type {
	return &Type{Kind: KindMap, Key: key, Value: value}
}

// Record builds a record whose wire order is the order of fields.
func Record(name string, fields ...Field) *Type {
	return &Type{Kind: KindRecord, Name: name, Fields: fields}
}

// Enum builds an enum whose member indices follow declaration order.
func Enum(name string, members ...string) *Type {
	return &Type{Kind: KindEnum, Name: name, Members: members}
}

// Variant builds a tagged union; candidate indices follow declaration order.
func Variant(name string, cases ...Case) *Type {
	return &Type{Kind: KindVariant, Name: name, Cases: cases}
}

func F(name string, t *Type) Field {
	return Field{Name: name, Type: t}
}

func C(name string, t *Type) Case {
	return Case{Name: name, Type: t}
}

// Validate checks that t is a well formed descriptor graph.
func Validate(t *Type) error {
	return types.Validate(t)
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// childPath returns a copy of path extended by seg, safe to retain.
func childPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
