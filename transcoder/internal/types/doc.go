// Package types defines the type descriptors shared by the encoder and decoder.
//
// A Type is a closed tagged union over Kind: primitive scalars, containers
// (sequence, tuple, option, map), enums, tagged variants and records.
// Descriptors are built once per schema type and are read-only afterwards,
// which keeps encoding and decoding symmetric.
//
// # Key Types
//
//   - Type: descriptor node with child slots per Kind
//   - Kind: type discriminator, ordered by dispatch priority
//
// This package is internal to the transcoder.
package types
