// Package transcoder provides schema-driven bincode encoding and decoding.
//
// This package converts value trees (records, variants, maps, sequences and
// scalars) into the canonical little-endian bincode representation and back,
// guided by an explicit type descriptor rather than Go reflection.
//
// # Wire Format
//
//	Type            Encoding
//	──────────────────────────────────────────────────────────
//	bool            1 byte, 0 or 1
//	u8..u64/s8..s64 width bytes, little-endian, two's complement
//	u128/s128       16 bytes, low 8 bytes first
//	f32/f64         IEEE-754 bit pattern, little-endian
//	unit            nothing
//	char            UTF-8 bytes of the scalar, no prefix
//	string/bytes    u64 length + raw bytes
//	sequence<T>     u64 length + items
//	tuple           items in order
//	option<T>       1 byte tag + payload when tag is 1
//	map<K, V>       u64 length + key/value pairs
//	enum            u32 member index
//	variant         u32 case index + payload
//	record          fields in declared order
//
// Lengths above MaxLength (2^31-1) are rejected in both directions.
//
// # Key Types
//
//	Type          - Descriptor of a value shape
//	Encoder       - Appends encodings to a buffer
//	Decoder       - Reads values from a byte slice with strict validation
//	Compiler      - Builds descriptors from WIT type definitions
//	Fingerprint   - Keyed hash of a descriptor signature
//
// # Value Trees
//
// Decoders produce records as map[string]any, variants as a single-key
// map[string]any{case: payload}, maps as []MapEntry in wire order,
// sequences and tuples as []any, enums as their uint32 index and 128-bit
// integers as Uint128 or Int128. Encoders accept the same shapes plus
// loosely typed Go numbers, any Go slice for sequences, member names for
// enums and VariantValue for variants.
//
// An absent option is nil. When the option element is itself an option,
// present values are wrapped in Optional so Some(None) stays distinct
// from None.
//
// # Maps
//
// Decoding requires map keys in strictly increasing order of their encoded
// bytes. Encoding writes []MapEntry in the order given, so a producer that
// needs decodable output calls CanonicalizeMap first. Go maps passed to the
// encoder are canonicalized automatically.
//
// # Depth Limit
//
// WithMaxDepth bounds how many sequences, tuples, options, maps, variants
// and records may be nested in one value. The limit applies per call:
//
//	data, err := transcoder.Encode(v, t, transcoder.WithMaxDepth(64))
//	v, rest, err := transcoder.Decode(data, t, transcoder.WithMaxDepth(64))
//
// # Thread Safety
//
// Descriptors, Compiler and the package-level functions are safe for
// concurrent use. Encoder and Decoder keep a cursor and are NOT thread-safe.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[encode] overflow at biases.pr: schema type u8 - value 300 overflows u8
//	[decode] invalid_variant at clock (offset 412): variant index 3 out of range (3 candidates)
package transcoder
