// Package wire provides internal helpers for the bincode wire format.
//
// This package contains value coercion helpers, range checks and other
// low-level utilities used by the transcoder package.
//
// # Contents
//
//   - coerce.go: coercion from loosely typed Go values to wire integers and floats
//   - helpers.go: length limits, overflow-safe arithmetic, char validation
//
// This package is internal to the transcoder.
package wire
