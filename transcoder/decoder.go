package transcoder

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/wippyai/bincode/errors"
	"go.uber.org/zap"
)

// Decoder reads canonical encodings from a byte slice, one value at a time.
type Decoder struct {
	data  []byte
	pos   int
	depth depthGuard
	opts  options
}

func NewDecoder(data []byte, opts ...CodecOption) *Decoder {
	return &Decoder{data: data, opts: buildOptions(opts)}
}

// Decode reads one value of type t. On failure the cursor is left where
// the call started and no partial value is returned.
func (d *Decoder) Decode(t *Type) (any, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseDecode, nil, "descriptor")
	}

	start := d.pos
	d.depth = newDepthGuard(errors.PhaseDecode, d.opts)
	v, err := d.decodeValue(t, nil)
	if err != nil {
		Logger().Debug("decode failed",
			zap.Stringer("type", t),
			zap.Int("offset", d.pos),
			zap.Error(err),
		)
		d.pos = start
		return nil, err
	}
	return v, nil
}

// Remaining returns the unread tail of the input.
func (d *Decoder) Remaining() []byte {
	return d.data[d.pos:]
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.pos
}

// Decode reads one value of type t from data and returns it together with
// the unconsumed tail.
func Decode(data []byte, t *Type, opts ...CodecOption) (any, []byte, error) {
	d := NewDecoder(data, opts...)
	v, err := d.Decode(t)
	if err != nil {
		return nil, data, err
	}
	return v, d.Remaining(), nil
}

// DecodeExact is Decode for inputs that must hold exactly one value.
func DecodeExact(data []byte, t *Type, opts ...CodecOption) (any, error) {
	v, rest, err := Decode(data, t, opts...)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindTrailingBytes).
			Offset(len(data)-len(rest)).
			SchemaType(t.String()).
			Detail("%d bytes left after value", len(rest)).
			Build()
	}
	return v, nil
}

func (d *Decoder) remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) take(n int, path []string) ([]byte, error) {
	if n > d.remaining() {
		return nil, errors.InputTooShort(path, d.pos, n, d.remaining())
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Decoder) readU8(path []string) (uint8, error) {
	b, err := d.take(1, path)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) readU16(path []string) (uint16, error) {
	b, err := d.take(2, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) readU32(path []string) (uint32, error) {
	b, err := d.take(4, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) readU64(path []string) (uint64, error) {
	b, err := d.take(8, path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) readLength(path []string) (int, error) {
	at := d.pos
	n, err := d.readU64(path)
	if err != nil {
		return 0, err
	}
	if n > MaxLength {
		lengthErr := errors.LengthExceeded(errors.PhaseDecode, path, n, MaxLength)
		lengthErr.Offset, lengthErr.HasOffset = at, true
		return 0, lengthErr
	}
	return int(n), nil
}

// readTag reads a bool or option tag byte, which must be 0 or 1.
func (d *Decoder) readTag(what string, path []string) (bool, error) {
	at := d.pos
	b, err := d.readU8(path)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.New(errors.PhaseDecode, errors.KindInvalidValue).
			Path(path...).
			Offset(at).
			Value(b).
			Detail("invalid %s byte 0x%02x", what, b).
			Build()
	}
}

func (d *Decoder) readIndex(count int, path []string) (uint32, error) {
	at := d.pos
	idx, err := d.readU32(path)
	if err != nil {
		return 0, err
	}
	if int64(idx) >= int64(count) {
		indexErr := errors.InvalidDiscriminant(errors.PhaseDecode, path, idx, count)
		indexErr.Offset, indexErr.HasOffset = at, true
		return 0, indexErr
	}
	return idx, nil
}

func (d *Decoder) decodeValue(t *Type, path []string) (any, error) {
	if t == nil {
		return nil, errors.NilPointer(errors.PhaseDecode, path, "descriptor")
	}

	switch t.Kind {
	case KindBool:
		return d.readTag("bool", path)
	case KindU8:
		return d.readU8(path)
	case KindU16:
		return d.readU16(path)
	case KindU32:
		return d.readU32(path)
	case KindU64:
		return d.readU64(path)
	case KindS8:
		v, err := d.readU8(path)
		return int8(v), err
	case KindS16:
		v, err := d.readU16(path)
		return int16(v), err
	case KindS32:
		v, err := d.readU32(path)
		return int32(v), err
	case KindS64:
		v, err := d.readU64(path)
		return int64(v), err
	case KindU128:
		lo, hi, err := d.read128(path)
		if err != nil {
			return nil, err
		}
		return Uint128{Hi: hi, Lo: lo}, nil
	case KindS128:
		lo, hi, err := d.read128(path)
		if err != nil {
			return nil, err
		}
		return Int128{Hi: int64(hi), Lo: lo}, nil
	case KindF32:
		v, err := d.readU32(path)
		return math.Float32frombits(v), err
	case KindF64:
		v, err := d.readU64(path)
		return math.Float64frombits(v), err
	case KindUnit:
		return Unit{}, nil
	case KindChar:
		return d.decodeChar(path)
	case KindString:
		return d.decodeString(path)
	case KindBytes:
		n, err := d.readLength(path)
		if err != nil {
			return nil, err
		}
		b, err := d.take(n, path)
		if err != nil {
			return nil, err
		}
		return bytes.Clone(b), nil

	case KindSequence:
		return d.decodeSequence(t, path)
	case KindTuple:
		return d.decodeTuple(t, path)
	case KindOption:
		return d.decodeOption(t, path)
	case KindMap:
		return d.decodeMap(t, path)

	case KindEnum:
		return d.readIndex(len(t.Members), path)
	case KindVariant:
		return d.decodeVariant(t, path)
	case KindRecord:
		return d.decodeRecord(t, path)

	default:
		return nil, errors.Unsupported(errors.PhaseDecode, "type kind: "+t.Kind.String())
	}
}

// read128 returns the low and high halves, stored low first.
func (d *Decoder) read128(path []string) (lo, hi uint64, err error) {
	b, err := d.take(16, path)
	if err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]), nil
}

func (d *Decoder) decodeChar(path []string) (rune, error) {
	at := d.pos
	lead, err := d.readU8(path)
	if err != nil {
		return 0, err
	}

	var n int
	switch {
	case lead < 0x80:
		return rune(lead), nil
	case lead&0xE0 == 0xC0:
		n = 2
	case lead&0xF0 == 0xE0:
		n = 3
	case lead&0xF8 == 0xF0:
		n = 4
	default:
		return 0, errors.InvalidUTF8(errors.PhaseDecode, path, at, []byte{lead})
	}

	d.pos = at
	b, err := d.take(n, path)
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(b)
	if size != n {
		return 0, errors.InvalidUTF8(errors.PhaseDecode, path, at, b)
	}
	return r, nil
}

func (d *Decoder) decodeString(path []string) (string, error) {
	n, err := d.readLength(path)
	if err != nil {
		return "", err
	}
	at := d.pos
	b, err := d.take(n, path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, path, at, b)
	}
	return string(b), nil
}

func (d *Decoder) decodeSequence(t *Type, path []string) (any, error) {
	if err := d.depth.enter(path); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	n, err := d.readLength(path)
	if err != nil {
		return nil, err
	}

	capHint := n
	if size, fixed := FixedSize(t.Elem); fixed {
		need, _ := safeMulU64(uint64(n), uint64(size))
		if need > uint64(d.remaining()) {
			return nil, errors.New(errors.PhaseDecode, errors.KindInputTooShort).
				Path(path...).
				Offset(d.pos).
				Detail("sequence of %d items needs %d bytes, %d remaining", n, need, d.remaining()).
				Build()
		}
		if size == 0 {
			capHint = 0
		}
	} else if capHint > d.remaining() {
		// Variable items take at least one byte each, except empty tuples
		// and records, which cannot be told apart cheaply here.
		capHint = d.remaining()
	}

	items := make([]any, 0, capHint)
	for i := 0; i < n; i++ {
		item, err := d.decodeValue(t.Elem, childPath(path, indexSegment(i)))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *Decoder) decodeTuple(t *Type, path []string) (any, error) {
	if err := d.depth.enter(path); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	items := make([]any, len(t.Items))
	for i, item := range t.Items {
		v, err := d.decodeValue(item, childPath(path, indexSegment(i)))
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

func (d *Decoder) decodeOption(t *Type, path []string) (any, error) {
	if err := d.depth.enter(path); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	present, err := d.readTag("option tag", path)
	if err != nil || !present {
		return nil, err
	}

	v, err := d.decodeValue(t.Elem, path)
	if err != nil {
		return nil, err
	}
	if t.Elem.Kind == KindOption {
		return Optional{Value: v}, nil
	}
	return v, nil
}

func (d *Decoder) decodeMap(t *Type, path []string) (any, error) {
	if err := d.depth.enter(path); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	n, err := d.readLength(path)
	if err != nil {
		return nil, err
	}

	capHint := n
	if capHint > d.remaining() {
		capHint = d.remaining()
	}
	entries := make([]MapEntry, 0, capHint)

	var prevKey []byte
	for i := 0; i < n; i++ {
		entryPath := childPath(path, indexSegment(i))

		keyStart := d.pos
		key, err := d.decodeValue(t.Key, entryPath)
		if err != nil {
			return nil, err
		}
		keySpan := d.data[keyStart:d.pos]
		if i > 0 && bytes.Compare(keySpan, prevKey) <= 0 {
			return nil, errors.New(errors.PhaseDecode, errors.KindNonCanonicalMap).
				Path(entryPath...).
				Offset(keyStart).
				Detail("key bytes %x do not sort after previous key %x", keySpan, prevKey).
				Build()
		}
		prevKey = keySpan

		value, err := d.decodeValue(t.Value, entryPath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: key, Value: value})
	}
	return entries, nil
}

func (d *Decoder) decodeVariant(t *Type, path []string) (any, error) {
	if err := d.depth.enter(path); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	idx, err := d.readIndex(len(t.Cases), path)
	if err != nil {
		return nil, err
	}

	c := t.Cases[idx]
	payload, err := d.decodeValue(c.Type, childPath(path, c.Name))
	if err != nil {
		return nil, err
	}
	return map[string]any{c.Name: payload}, nil
}

func (d *Decoder) decodeRecord(t *Type, path []string) (any, error) {
	if err := d.depth.enter(path); err != nil {
		return nil, err
	}
	defer d.depth.leave()

	m := make(map[string]any, len(t.Fields))
	for _, field := range t.Fields {
		v, err := d.decodeValue(field.Type, childPath(path, field.Name))
		if err != nil {
			return nil, err
		}
		m[field.Name] = v
	}
	return m, nil
}
