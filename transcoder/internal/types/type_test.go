package types //nolint:revive // package name is used by internal consumers

import (
	"testing"

	"github.com/wippyai/bincode/errors"
)

func prim(k Kind) *Type { return &Type{Kind: k} }

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		name string
		want string
	}{
		{name: "primitive", typ: prim(KindU16), want: "u16"},
		{name: "sequence", typ: &Type{Kind: KindSequence, Elem: prim(KindU8)}, want: "sequence<u8>"},
		{name: "option", typ: &Type{Kind: KindOption, Elem: prim(KindString)}, want: "option<string>"},
		{
			name: "map",
			typ:  &Type{Kind: KindMap, Key: prim(KindString), Value: prim(KindU32)},
			want: "map<string, u32>",
		},
		{
			name: "tuple",
			typ:  &Type{Kind: KindTuple, Items: []*Type{prim(KindU8), prim(KindBool)}},
			want: "tuple<u8, bool>",
		},
		{
			name: "enum",
			typ:  &Type{Kind: KindEnum, Name: "Clock", Members: []string{"internal", "external"}},
			want: "enum Clock{internal, external}",
		},
		{
			name: "variant",
			typ: &Type{Kind: KindVariant, Name: "Shape", Cases: []Case{
				{Name: "none", Type: prim(KindUnit)},
				{Name: "size", Type: prim(KindU8)},
			}},
			want: "variant Shape{none: unit, size: u8}",
		},
		{
			name: "anonymous record",
			typ: &Type{Kind: KindRecord, Fields: []Field{
				{Name: "a", Type: prim(KindU16)},
				{Name: "b", Type: &Type{Kind: KindOption, Elem: prim(KindU8)}},
			}},
			want: "record{a: u16, b: option<u8>}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTypeStringRecursive(t *testing.T) {
	node := &Type{Kind: KindRecord, Name: "Node"}
	node.Fields = []Field{
		{Name: "value", Type: prim(KindU32)},
		{Name: "next", Type: &Type{Kind: KindOption, Elem: node}},
	}

	want := "record Node{value: u32, next: option<@Node>}"
	if got := node.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypeStringSharedChild(t *testing.T) {
	shared := &Type{Kind: KindRecord, Name: "Point", Fields: []Field{{Name: "x", Type: prim(KindS32)}}}
	pair := &Type{Kind: KindTuple, Items: []*Type{shared, shared}}

	want := "tuple<record Point{x: s32}, record Point{x: s32}>"
	if got := pair.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypeIndexLookups(t *testing.T) {
	rec := &Type{Kind: KindRecord, Fields: []Field{{Name: "a"}, {Name: "b"}}}
	if rec.FieldIndex("b") != 1 || rec.FieldIndex("z") != -1 {
		t.Error("FieldIndex mismatch")
	}

	v := &Type{Kind: KindVariant, Cases: []Case{{Name: "ok"}, {Name: "err"}}}
	if v.CaseIndex("err") != 1 || v.CaseIndex("none") != -1 {
		t.Error("CaseIndex mismatch")
	}

	e := &Type{Kind: KindEnum, Members: []string{"low", "high"}}
	if e.MemberIndex("low") != 0 || e.MemberIndex("mid") != -1 {
		t.Error("MemberIndex mismatch")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		typ  *Type
		name string
		kind errors.Kind
		ok   bool
	}{
		{name: "primitive", typ: prim(KindF64), ok: true},
		{name: "nil", typ: nil, kind: errors.KindNilPointer},
		{name: "sequence without element", typ: &Type{Kind: KindSequence}, kind: errors.KindNilPointer},
		{name: "map without value", typ: &Type{Kind: KindMap, Key: prim(KindU8)}, kind: errors.KindNilPointer},
		{name: "empty enum", typ: &Type{Kind: KindEnum}, kind: errors.KindInvalidInput},
		{
			name: "duplicate enum member",
			typ:  &Type{Kind: KindEnum, Members: []string{"a", "a"}},
			kind: errors.KindInvalidInput,
		},
		{name: "empty variant", typ: &Type{Kind: KindVariant}, kind: errors.KindInvalidInput},
		{
			name: "variant with nil payload",
			typ:  &Type{Kind: KindVariant, Cases: []Case{{Name: "a"}}},
			kind: errors.KindNilPointer,
		},
		{
			name: "duplicate field",
			typ: &Type{Kind: KindRecord, Fields: []Field{
				{Name: "a", Type: prim(KindU8)},
				{Name: "a", Type: prim(KindU8)},
			}},
			kind: errors.KindInvalidInput,
		},
		{name: "empty record", typ: &Type{Kind: KindRecord}, ok: true},
		{name: "empty tuple", typ: &Type{Kind: KindTuple}, ok: true},
		{name: "unknown kind", typ: &Type{Kind: Kind(200)}, kind: errors.KindInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.typ)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestValidateRecursive(t *testing.T) {
	node := &Type{Kind: KindRecord, Name: "Node"}
	node.Fields = []Field{
		{Name: "children", Type: &Type{Kind: KindSequence, Elem: node}},
	}
	if err := Validate(node); err != nil {
		t.Fatalf("recursive descriptor should validate: %v", err)
	}
}

func TestValidateErrorPath(t *testing.T) {
	rec := &Type{Kind: KindRecord, Fields: []Field{
		{Name: "inner", Type: &Type{Kind: KindTuple, Items: []*Type{prim(KindU8), nil}}},
	}}
	err := Validate(rec)
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if got := errors.JoinPath(e.Path); got != "inner[1]" {
		t.Errorf("path = %q, want %q", got, "inner[1]")
	}
}
