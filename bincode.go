package bincode

import (
	"github.com/wippyai/bincode/transcoder"
)

// Valuer converts a Go struct to the value tree of its descriptor.
type Valuer interface {
	Value() map[string]any
}

// Serializer produces the canonical encoding of a fixed-schema value.
type Serializer interface {
	Serialize() ([]byte, error)
}

// Marshal encodes v under t. A Valuer is encoded through its value tree;
// anything else must already be a value tree.
func Marshal(v any, t *transcoder.Type, opts ...transcoder.CodecOption) ([]byte, error) {
	if valuer, ok := v.(Valuer); ok {
		v = valuer.Value()
	}
	return transcoder.Encode(v, t, opts...)
}

// Unmarshal decodes exactly one value of type t from data.
func Unmarshal(data []byte, t *transcoder.Type, opts ...transcoder.CodecOption) (any, error) {
	return transcoder.DecodeExact(data, t, opts...)
}
