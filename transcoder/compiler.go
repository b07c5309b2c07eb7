package transcoder

import (
	"strings"
	"sync"

	"github.com/wippyai/bincode/errors"
	"go.bytecodealliance.org/wit"
)

// Compiler builds descriptors from WIT types. Results are cached per
// *wit.TypeDef, so compiling the same definition twice yields the same
// *Type. A Compiler is safe for concurrent use.
type Compiler struct {
	rename func(string) string
	cache  sync.Map // *wit.TypeDef -> *Type
}

type CompilerOption func(*Compiler)

// WithSnakeCaseNames rewrites kebab-case WIT names (fields, cases, enum
// members) to snake_case, matching serde's default naming.
func WithSnakeCaseNames() CompilerOption {
	return func(c *Compiler) {
		c.rename = func(s string) string { return strings.ReplaceAll(s, "-", "_") }
	}
}

func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{rename: func(s string) string { return s }}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) Compile(witType wit.Type) (*Type, error) {
	if witType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("WIT type cannot be nil").
			Build()
	}
	return c.compile(witType, nil)
}

func (c *Compiler) compile(witType wit.Type, path []string) (*Type, error) {
	switch t := witType.(type) {
	case wit.Bool:
		return Bool, nil
	case wit.U8:
		return U8, nil
	case wit.S8:
		return S8, nil
	case wit.U16:
		return U16, nil
	case wit.S16:
		return S16, nil
	case wit.U32:
		return U32, nil
	case wit.S32:
		return S32, nil
	case wit.U64:
		return U64, nil
	case wit.S64:
		return S64, nil
	case wit.F32:
		return F32, nil
	case wit.F64:
		return F64, nil
	case wit.Char:
		return Char, nil
	case wit.String:
		return String, nil
	case *wit.TypeDef:
		return c.compileTypeDef(t, path)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported WIT type: %T", witType).
			Build()
	}
}

func (c *Compiler) compileTypeDef(t *wit.TypeDef, path []string) (*Type, error) {
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*Type), nil
	}

	name := ""
	if t.Name != nil {
		name = *t.Name
	}

	var (
		compiled *Type
		err      error
	)

	switch kind := t.Kind.(type) {
	case *wit.Record:
		compiled, err = c.compileRecord(name, kind, path)
	case *wit.List:
		var elem *Type
		elem, err = c.compile(kind.Type, childPath(path, "<elem>"))
		if err == nil {
			compiled = specializeList(elem)
		}
	case *wit.Tuple:
		compiled, err = c.compileTuple(kind, path)
	case *wit.Option:
		var elem *Type
		elem, err = c.compile(kind.Type, path)
		if err == nil {
			compiled = Option(elem)
		}
	case *wit.Enum:
		members := make([]string, len(kind.Cases))
		for i, ec := range kind.Cases {
			members[i] = c.rename(ec.Name)
		}
		compiled = Enum(name, members...)
	case *wit.Variant:
		compiled, err = c.compileVariant(name, kind, path)
	case *wit.Result:
		compiled, err = c.compileResult(name, kind, path)
	case *wit.Flags:
		err = errors.Unsupported(errors.PhaseCompile, "flags types have no bincode representation")
	case *wit.Own, *wit.Borrow:
		err = errors.Unsupported(errors.PhaseCompile, "resource handles cannot be serialized")
	case wit.Type:
		// type alias
		compiled, err = c.compile(kind, path)
	default:
		err = errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported TypeDef kind: %T", kind).
			Build()
	}
	if err != nil {
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(t, compiled)
	return actual.(*Type), nil
}

// list<u8> is a byte array on the wire either way; Bytes decodes to []byte.
func specializeList(elem *Type) *Type {
	if elem == U8 {
		return Bytes
	}
	return Sequence(elem)
}

func (c *Compiler) compileRecord(name string, r *wit.Record, path []string) (*Type, error) {
	fields := make([]Field, 0, len(r.Fields))
	for _, witField := range r.Fields {
		fieldName := c.rename(witField.Name)
		fieldType, err := c.compile(witField.Type, childPath(path, fieldName))
		if err != nil {
			return nil, err
		}
		fields = append(fields, F(fieldName, fieldType))
	}
	return Record(name, fields...), nil
}

func (c *Compiler) compileTuple(t *wit.Tuple, path []string) (*Type, error) {
	items := make([]*Type, len(t.Types))
	for i, elem := range t.Types {
		item, err := c.compile(elem, childPath(path, indexSegment(i)))
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return Tuple(items...), nil
}

// Cases without a payload carry unit.
func (c *Compiler) compileVariant(name string, v *wit.Variant, path []string) (*Type, error) {
	cases := make([]Case, 0, len(v.Cases))
	for _, wc := range v.Cases {
		caseName := c.rename(wc.Name)
		payload := UnitType
		if wc.Type != nil {
			var err error
			payload, err = c.compile(wc.Type, childPath(path, caseName))
			if err != nil {
				return nil, err
			}
		}
		cases = append(cases, C(caseName, payload))
	}
	return Variant(name, cases...), nil
}

// Results become variant{ok, err}, the layout serde uses for Result.
func (c *Compiler) compileResult(name string, r *wit.Result, path []string) (*Type, error) {
	ok, errType := UnitType, UnitType
	if r.OK != nil {
		var err error
		if ok, err = c.compile(r.OK, childPath(path, "ok")); err != nil {
			return nil, err
		}
	}
	if r.Err != nil {
		var err error
		if errType, err = c.compile(r.Err, childPath(path, "err")); err != nil {
			return nil, err
		}
	}
	return Variant(name, C("ok", ok), C("err", errType)), nil
}
