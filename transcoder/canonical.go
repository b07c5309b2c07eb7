package transcoder

import (
	"bytes"
	"sort"

	"github.com/wippyai/bincode/errors"
)

type keyedEntry struct {
	key   []byte
	entry MapEntry
}

// CanonicalizeMap returns a copy of entries sorted by the encoded bytes of
// each key, the order a decoder requires. Two keys with the same encoding
// are an error.
func CanonicalizeMap(entries []MapEntry, keyType *Type) ([]MapEntry, error) {
	if keyType == nil {
		return nil, errors.NilPointer(errors.PhaseEncode, nil, "map key descriptor")
	}
	return canonicalize(entries, keyType, nil)
}

func canonicalize(entries []MapEntry, keyType *Type, path []string) ([]MapEntry, error) {
	buf := getBuf()
	defer putBuf(buf)

	keyed := make([]keyedEntry, len(entries))
	e := Encoder{buf: (*buf)[:0]}
	for i, entry := range entries {
		e.Reset()
		e.depth = newDepthGuard(errors.PhaseEncode, e.opts)
		if err := e.encodeValue(keyType, entry.Key, childPath(path, indexSegment(i))); err != nil {
			*buf = e.buf
			return nil, err
		}
		keyed[i] = keyedEntry{key: bytes.Clone(e.buf), entry: entry}
	}
	*buf = e.buf

	sort.Slice(keyed, func(i, j int) bool {
		return bytes.Compare(keyed[i].key, keyed[j].key) < 0
	})

	out := make([]MapEntry, len(keyed))
	for i, k := range keyed {
		if i > 0 && bytes.Equal(k.key, keyed[i-1].key) {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidValue).
				Path(path...).
				Value(k.entry.Key).
				Detail("duplicate map key %x", k.key).
				Build()
		}
		out[i] = k.entry
	}
	return out, nil
}
