package device

import (
	"fmt"

	"github.com/wippyai/bincode/errors"
)

// treeReader extracts typed fields from decoded value trees. The first
// failure sticks; later reads return zero values.
type treeReader struct {
	err error
}

func (r *treeReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func joinPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}

func typeMismatch(path []string, got any, want string) *errors.Error {
	return errors.TypeMismatch(errors.PhaseDecode, path, fmt.Sprintf("%T", got), want)
}

func (r *treeReader) record(v any, path []string) map[string]any {
	if r.err != nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.fail(typeMismatch(path, v, "record"))
		return nil
	}
	return m
}

func (r *treeReader) field(m map[string]any, name string, path []string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := m[name]
	if !ok {
		r.fail(errors.FieldMissing(errors.PhaseDecode, path, name))
		return nil, false
	}
	return v, true
}

// read returns m[name] as T.
func read[T any](r *treeReader, m map[string]any, name string, path []string) T {
	var zero T
	v, ok := r.field(m, name, path)
	if !ok {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		r.fail(typeMismatch(joinPath(path, name), v, fmt.Sprintf("%T", zero)))
		return zero
	}
	return t
}

// words fills dst from the tuple m[name].
func (r *treeReader) words(m map[string]any, name string, path []string, dst []uint64) {
	items := read[[]any](r, m, name, path)
	if r.err != nil {
		return
	}
	if len(items) != len(dst) {
		r.fail(errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(joinPath(path, name)...).
			Detail("expected %d words, got %d", len(dst), len(items)).
			Build())
		return
	}
	for i, item := range items {
		w, ok := item.(uint64)
		if !ok {
			r.fail(typeMismatch(joinPath(joinPath(path, name), fmt.Sprintf("[%d]", i)), item, "uint64"))
			return
		}
		dst[i] = w
	}
}

func wordsValue(src []uint64) []any {
	out := make([]any, len(src))
	for i, w := range src {
		out[i] = w
	}
	return out
}

// u8Field binds a record field name to a uint8 in T.
type u8Field[T any] struct {
	name string
	ref  func(*T) *uint8
}

func u8Value[T any](fields []u8Field[T], v *T) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.name] = *f.ref(v)
	}
	return m
}

func u8FromValue[T any](r *treeReader, fields []u8Field[T], v any, path []string) T {
	var out T
	m := r.record(v, path)
	for _, f := range fields {
		*f.ref(&out) = read[uint8](r, m, f.name, path)
	}
	return out
}
