// Package errors provides structured error types for the bincode module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, byte offset, Go and schema
// type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidValue).
//		Path("configuration", "enable_output").
//		Offset(312).
//		Detail("boolean byte 0x02").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u32")
//	err := errors.InputTooShort(path, 14, 8, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind; HasKind matches Kind in any phase.
package errors
