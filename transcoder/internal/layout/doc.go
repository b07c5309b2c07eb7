// Package layout computes encoded sizes for type descriptors.
//
// In the bincode format most values are variable length, but scalars,
// enums and aggregates built only from them always occupy the same number
// of bytes. The decoder uses these sizes to reject sequence lengths that
// cannot fit in the remaining input before allocating anything.
//
// # Layout Rules
//
//   - Scalars: fixed width (bool=1, u32=4, u128=16, unit=0)
//   - Enums: a u32 index, always 4 bytes
//   - Tuples and records: sum of their parts, fixed if every part is
//   - Variants: u32 index plus payload, fixed if all payloads share a size
//   - Char, strings, bytes, sequences, options, maps: never fixed
//
// # Usage
//
//	info := layout.NewCalculator().Calculate(t)
//	// info.Size, info.Fixed, info.FieldOffs available
//
// This package is internal to the transcoder.
package layout
