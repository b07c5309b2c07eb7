package transcoder

import (
	"encoding/binary"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/wippyai/bincode/errors"
	"github.com/wippyai/bincode/transcoder/internal/wire"
	"go.uber.org/zap"
)

// MaxLength is the largest length accepted for strings, byte arrays,
// sequences and maps.
const MaxLength = wire.MaxLength

// Local wrappers for wire package functions
var (
	typeName        = wire.TypeName
	coerceUnsigned  = wire.CoerceUnsigned
	coerceSigned    = wire.CoerceSigned
	coerceToUint32  = wire.CoerceToUint32
	coerceToFloat64 = wire.CoerceToFloat64
	safeMulU64      = wire.SafeMulU64
)

// Encoder appends canonical encodings to an internal buffer.
type Encoder struct {
	buf   []byte
	depth depthGuard
	opts  options
}

func NewEncoder(opts ...CodecOption) *Encoder {
	return &Encoder{opts: buildOptions(opts)}
}

// Encode appends the encoding of value under t. On failure nothing is
// appended.
func (e *Encoder) Encode(value any, t *Type) error {
	if t == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, "descriptor")
	}

	start := len(e.buf)
	if size, ok := FixedSize(t); ok {
		e.grow(size)
	}

	e.depth = newDepthGuard(errors.PhaseEncode, e.opts)
	if err := e.encodeValue(t, value, nil); err != nil {
		e.buf = e.buf[:start]
		Logger().Debug("encode failed",
			zap.Stringer("type", t),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Bytes returns the encoded output. The slice aliases the internal buffer
// until the next Encode or Reset.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset discards the output but keeps the allocated buffer.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Encode returns the canonical encoding of value under t.
func Encode(value any, t *Type, opts ...CodecOption) ([]byte, error) {
	buf := getBuf()
	defer putBuf(buf)

	e := Encoder{buf: *buf, opts: buildOptions(opts)}
	err := e.Encode(value, t)
	*buf = e.buf
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	return out, nil
}

func (e *Encoder) grow(n int) {
	if cap(e.buf)-len(e.buf) < n {
		grown := make([]byte, len(e.buf), len(e.buf)+n)
		copy(grown, e.buf)
		e.buf = grown
	}
}

func (e *Encoder) encodeValue(t *Type, value any, path []string) error {
	if t == nil {
		return errors.NilPointer(errors.PhaseEncode, path, "descriptor")
	}

	switch t.Kind {
	case KindBool:
		return e.encodeBool(value, path)
	case KindU8, KindU16, KindU32, KindU64:
		return e.encodeUnsigned(t.Kind, value, path)
	case KindS8, KindS16, KindS32, KindS64:
		return e.encodeSigned(t.Kind, value, path)
	case KindU128:
		u, err := coerceUint128(value, path)
		if err != nil {
			return err
		}
		e.buf = binary.LittleEndian.AppendUint64(e.buf, u.Lo)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, u.Hi)
		return nil
	case KindS128:
		i, err := coerceInt128(value, path)
		if err != nil {
			return err
		}
		e.buf = binary.LittleEndian.AppendUint64(e.buf, i.Lo)
		e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(i.Hi))
		return nil
	case KindF32:
		return e.encodeF32(value, path)
	case KindF64:
		return e.encodeF64(value, path)
	case KindUnit:
		return e.encodeUnit(value, path)
	case KindChar:
		return e.encodeChar(value, path)
	case KindString:
		return e.encodeString(value, path)
	case KindBytes:
		return e.encodeBytes(value, path)

	case KindSequence:
		return e.encodeSequence(t, value, path)
	case KindTuple:
		return e.encodeTuple(t, value, path)
	case KindOption:
		return e.encodeOption(t, value, path)
	case KindMap:
		return e.encodeMap(t, value, path)

	case KindEnum:
		return e.encodeEnum(t, value, path)
	case KindVariant:
		return e.encodeVariant(t, value, path)
	case KindRecord:
		return e.encodeRecord(t, value, path)

	default:
		return errors.Unsupported(errors.PhaseEncode, "type kind: "+t.Kind.String())
	}
}

func (e *Encoder) encodeBool(value any, path []string) error {
	v, ok := value.(bool)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "bool")
	}
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
	return nil
}

func (e *Encoder) encodeUnsigned(kind Kind, value any, path []string) error {
	width, _ := kind.FixedWidth()
	v, numeric, inRange := coerceUnsigned(value, width*8)
	if !numeric {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), kind.String())
	}
	if !inRange {
		return errors.Overflow(errors.PhaseEncode, path, value, kind.String())
	}
	e.appendUint(width, v)
	return nil
}

func (e *Encoder) encodeSigned(kind Kind, value any, path []string) error {
	width, _ := kind.FixedWidth()
	v, numeric, inRange := coerceSigned(value, width*8)
	if !numeric {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), kind.String())
	}
	if !inRange {
		return errors.Overflow(errors.PhaseEncode, path, value, kind.String())
	}
	// two's complement truncation to width
	e.appendUint(width, uint64(v))
	return nil
}

func (e *Encoder) appendUint(width int, v uint64) {
	switch width {
	case 1:
		e.buf = append(e.buf, uint8(v))
	case 2:
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(v))
	case 4:
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v))
	default:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	}
}

func (e *Encoder) encodeF32(value any, path []string) error {
	var v float32
	switch val := value.(type) {
	case float32:
		v = val
	default:
		f, ok := coerceToFloat64(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "f32")
		}
		v = float32(f)
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, math.Float32bits(v))
	return nil
}

func (e *Encoder) encodeF64(value any, path []string) error {
	v, ok := coerceToFloat64(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "f64")
	}
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v))
	return nil
}

func (e *Encoder) encodeUnit(value any, path []string) error {
	switch value.(type) {
	case nil, Unit, struct{}:
		return nil
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "unit")
	}
}

func (e *Encoder) encodeChar(value any, path []string) error {
	var r rune
	switch val := value.(type) {
	case rune: // rune is int32
		r = val
	case string:
		if utf8.RuneCountInString(val) != 1 {
			return errors.New(errors.PhaseEncode, errors.KindInvalidValue).
				Path(path...).
				SchemaType("char").
				Detail("string %q is not a single character", val).
				Build()
		}
		r, _ = utf8.DecodeRuneInString(val)
		if r == utf8.RuneError && val != string(utf8.RuneError) {
			return errors.InvalidUTF8(errors.PhaseEncode, path, len(e.buf), []byte(val))
		}
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "char")
	}
	if !wire.ValidateChar(r) {
		return errors.New(errors.PhaseEncode, errors.KindInvalidValue).
			Path(path...).
			Value(r).
			Detail("invalid Unicode scalar value: 0x%X", r).
			Build()
	}
	e.buf = utf8.AppendRune(e.buf, r)
	return nil
}

func (e *Encoder) encodeString(value any, path []string) error {
	s, ok := value.(string)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "string")
	}
	if !utf8.ValidString(s) {
		return errors.InvalidUTF8(errors.PhaseEncode, path, len(e.buf), []byte(s))
	}
	if err := e.appendLength(len(s), path); err != nil {
		return err
	}
	e.buf = append(e.buf, s...)
	return nil
}

func (e *Encoder) encodeBytes(value any, path []string) error {
	var b []byte
	switch val := value.(type) {
	case []byte:
		b = val
	case string:
		b = []byte(val)
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "bytes")
	}
	if err := e.appendLength(len(b), path); err != nil {
		return err
	}
	e.buf = append(e.buf, b...)
	return nil
}

func (e *Encoder) appendLength(n int, path []string) error {
	if n > MaxLength {
		return errors.LengthExceeded(errors.PhaseEncode, path, uint64(n), MaxLength)
	}
	e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(n))
	return nil
}

// listElems exposes []any and any other Go slice or array by index.
func listElems(value any) (n int, at func(int) any, ok bool) {
	if items, isAny := value.([]any); isAny {
		return len(items), func(i int) any { return items[i] }, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return 0, nil, false
	}
	return rv.Len(), func(i int) any { return rv.Index(i).Interface() }, true
}

func (e *Encoder) encodeSequence(t *Type, value any, path []string) error {
	if err := e.depth.enter(path); err != nil {
		return err
	}
	defer e.depth.leave()

	n, at, ok := listElems(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	if err := e.appendLength(n, path); err != nil {
		return err
	}

	if size, fixed := FixedSize(t.Elem); fixed {
		if total, ok := safeMulU64(uint64(n), uint64(size)); ok && total <= MaxLength {
			e.grow(int(total))
		}
	}

	for i := 0; i < n; i++ {
		if err := e.encodeValue(t.Elem, at(i), childPath(path, indexSegment(i))); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeTuple(t *Type, value any, path []string) error {
	if err := e.depth.enter(path); err != nil {
		return err
	}
	defer e.depth.leave()

	n, at, ok := listElems(value)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	if n != len(t.Items) {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			GoType(typeName(value)).
			SchemaType(t.String()).
			Detail("tuple has %d elements, value has %d", len(t.Items), n).
			Build()
	}

	for i, item := range t.Items {
		if err := e.encodeValue(item, at(i), childPath(path, indexSegment(i))); err != nil {
			return err
		}
	}
	return nil
}

func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (e *Encoder) encodeOption(t *Type, value any, path []string) error {
	if err := e.depth.enter(path); err != nil {
		return err
	}
	defer e.depth.leave()

	if isAbsent(value) {
		e.buf = append(e.buf, 0)
		return nil
	}
	if opt, ok := value.(Optional); ok {
		value = opt.Value
	}

	e.buf = append(e.buf, 1)
	return e.encodeValue(t.Elem, value, path)
}

func (e *Encoder) encodeMap(t *Type, value any, path []string) error {
	if err := e.depth.enter(path); err != nil {
		return err
	}
	defer e.depth.leave()

	entries, err := mapEntries(t, value, path)
	if err != nil {
		return err
	}
	if err := e.appendLength(len(entries), path); err != nil {
		return err
	}

	// Entries go out in the order given; CanonicalizeMap sorts them.
	for i, entry := range entries {
		entryPath := childPath(path, indexSegment(i))
		if err := e.encodeValue(t.Key, entry.Key, entryPath); err != nil {
			return err
		}
		if err := e.encodeValue(t.Value, entry.Value, entryPath); err != nil {
			return err
		}
	}
	return nil
}

// mapEntries accepts []MapEntry as is. Go maps have no order, so they are
// canonicalized by encoded key bytes.
func mapEntries(t *Type, value any, path []string) ([]MapEntry, error) {
	if entries, ok := value.([]MapEntry); ok {
		return entries, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}

	entries := make([]MapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, MapEntry{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}
	return canonicalize(entries, t.Key, path)
}

func (e *Encoder) encodeEnum(t *Type, value any, path []string) error {
	var idx uint32
	switch val := value.(type) {
	case string:
		i := t.MemberIndex(val)
		if i < 0 {
			return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
				Path(path...).
				SchemaType(t.String()).
				Value(val).
				Detail("unknown enum member %q", val).
				Build()
		}
		idx = uint32(i)
	default:
		v, ok := coerceToUint32(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
		}
		idx = v
	}

	if int(idx) >= len(t.Members) {
		return errors.InvalidDiscriminant(errors.PhaseEncode, path, idx, len(t.Members))
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, idx)
	return nil
}

func (e *Encoder) encodeVariant(t *Type, value any, path []string) error {
	if err := e.depth.enter(path); err != nil {
		return err
	}
	defer e.depth.leave()

	var (
		idx     uint32
		payload any
	)

	switch val := value.(type) {
	case VariantValue:
		if int(val.Index) >= len(t.Cases) {
			return errors.InvalidDiscriminant(errors.PhaseEncode, path, val.Index, len(t.Cases))
		}
		idx, payload = val.Index, val.Value
	case map[string]any:
		if len(val) != 1 {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				SchemaType(t.String()).
				Detail("variant value must contain exactly one case, got %d", len(val)).
				Build()
		}
		for name, v := range val {
			i := t.CaseIndex(name)
			if i < 0 {
				return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
					Path(path...).
					SchemaType(t.String()).
					Value(name).
					Detail("unknown variant case %q", name).
					Build()
			}
			idx, payload = uint32(i), v
		}
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}

	c := t.Cases[idx]
	e.buf = binary.LittleEndian.AppendUint32(e.buf, idx)
	return e.encodeValue(c.Type, payload, childPath(path, c.Name))
}

func (e *Encoder) encodeRecord(t *Type, value any, path []string) error {
	if err := e.depth.enter(path); err != nil {
		return err
	}
	defer e.depth.leave()

	m, ok := value.(map[string]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}

	for _, field := range t.Fields {
		fieldVal, exists := m[field.Name]
		if !exists {
			return errors.FieldMissing(errors.PhaseEncode, path, field.Name)
		}
		if err := e.encodeValue(field.Type, fieldVal, childPath(path, field.Name)); err != nil {
			return err
		}
	}

	if len(m) > len(t.Fields) {
		for name := range m {
			if t.FieldIndex(name) < 0 {
				return errors.FieldUnknown(errors.PhaseEncode, path, name)
			}
		}
	}
	return nil
}
