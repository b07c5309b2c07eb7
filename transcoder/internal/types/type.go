package types

import (
	"strconv"
	"strings"

	"github.com/wippyai/bincode/errors"
)

// Type describes the shape of a value. Exactly one group of child slots is
// meaningful for a given Kind. A Type must not be mutated once it is in use.
type Type struct {
	Elem    *Type // sequence, option
	Key     *Type // map
	Value   *Type // map
	Name    string
	Items   []*Type // tuple
	Fields  []Field // record, wire order
	Cases   []Case  // variant, wire index order
	Members []string
	Kind    Kind
}

type Field struct {
	Type *Type
	Name string
}

type Case struct {
	Type *Type
	Name string
}

// FieldIndex returns the position of the named record field.
func (t *Type) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// CaseIndex returns the position of the named variant case.
func (t *Type) CaseIndex(name string) int {
	for i, c := range t.Cases {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// MemberIndex returns the position of the named enum member.
func (t *Type) MemberIndex(name string) int {
	for i, m := range t.Members {
		if m == name {
			return i
		}
	}
	return -1
}

// String renders the canonical signature. Named types reached again while
// already being rendered print as "@name".
func (t *Type) String() string {
	var b strings.Builder
	writeSignature(&b, t, make(map[*Type]bool))
	return b.String()
}

func writeSignature(b *strings.Builder, t *Type, active map[*Type]bool) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	if active[t] {
		b.WriteByte('@')
		if t.Name != "" {
			b.WriteString(t.Name)
		} else {
			b.WriteString(t.Kind.String())
		}
		return
	}

	switch t.Kind {
	case KindSequence, KindOption:
		active[t] = true
		b.WriteString(t.Kind.String())
		b.WriteByte('<')
		writeSignature(b, t.Elem, active)
		b.WriteByte('>')
		delete(active, t)

	case KindMap:
		active[t] = true
		b.WriteString("map<")
		writeSignature(b, t.Key, active)
		b.WriteString(", ")
		writeSignature(b, t.Value, active)
		b.WriteByte('>')
		delete(active, t)

	case KindTuple:
		active[t] = true
		b.WriteString("tuple<")
		for i, item := range t.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeSignature(b, item, active)
		}
		b.WriteByte('>')
		delete(active, t)

	case KindEnum:
		writeHead(b, t)
		b.WriteString(strings.Join(t.Members, ", "))
		b.WriteByte('}')

	case KindVariant:
		active[t] = true
		writeHead(b, t)
		for i, c := range t.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
			b.WriteString(": ")
			writeSignature(b, c.Type, active)
		}
		b.WriteByte('}')
		delete(active, t)

	case KindRecord:
		active[t] = true
		writeHead(b, t)
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			writeSignature(b, f.Type, active)
		}
		b.WriteByte('}')
		delete(active, t)

	default:
		b.WriteString(t.Kind.String())
	}
}

func writeHead(b *strings.Builder, t *Type) {
	b.WriteString(t.Kind.String())
	if t.Name != "" {
		b.WriteByte(' ')
		b.WriteString(t.Name)
	}
	b.WriteByte('{')
}

// Validate checks that the descriptor graph is well formed.
func Validate(t *Type) error {
	return validate(t, nil, make(map[*Type]bool))
}

func validate(t *Type, path []string, seen map[*Type]bool) error {
	if t == nil {
		return errors.NilPointer(errors.PhaseValidate, append([]string(nil), path...), "descriptor")
	}
	if seen[t] {
		return nil
	}
	seen[t] = true

	switch t.Kind {
	case KindSequence, KindOption:
		return validate(t.Elem, append(path, "<elem>"), seen)

	case KindMap:
		if err := validate(t.Key, append(path, "<key>"), seen); err != nil {
			return err
		}
		return validate(t.Value, append(path, "<value>"), seen)

	case KindTuple:
		for i, item := range t.Items {
			if err := validate(item, append(path, "["+strconv.Itoa(i)+"]"), seen); err != nil {
				return err
			}
		}
		return nil

	case KindEnum:
		if len(t.Members) == 0 {
			return invalid(path, "enum %q has no members", t.Name)
		}
		names := make(map[string]bool, len(t.Members))
		for _, m := range t.Members {
			if names[m] {
				return invalid(path, "enum %q has duplicate member %q", t.Name, m)
			}
			names[m] = true
		}
		return nil

	case KindVariant:
		if len(t.Cases) == 0 {
			return invalid(path, "variant %q has no candidates", t.Name)
		}
		names := make(map[string]bool, len(t.Cases))
		for _, c := range t.Cases {
			if c.Name == "" {
				return invalid(path, "variant %q has an unnamed candidate", t.Name)
			}
			if names[c.Name] {
				return invalid(path, "variant %q has duplicate candidate %q", t.Name, c.Name)
			}
			names[c.Name] = true
			if err := validate(c.Type, append(path, c.Name), seen); err != nil {
				return err
			}
		}
		return nil

	case KindRecord:
		names := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				return invalid(path, "record %q has an unnamed field", t.Name)
			}
			if names[f.Name] {
				return invalid(path, "record %q has duplicate field %q", t.Name, f.Name)
			}
			names[f.Name] = true
			if err := validate(f.Type, append(path, f.Name), seen); err != nil {
				return err
			}
		}
		return nil

	default:
		if !t.Kind.IsPrimitive() {
			return invalid(path, "unknown kind %d", uint8(t.Kind))
		}
		return nil
	}
}

func invalid(path []string, format string, args ...any) error {
	return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
		Path(append([]string(nil), path...)...).
		Detail(format, args...).
		Build()
}
