// Package errors provides structured error types for the typelib library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes context: entity path, wire tag, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidData).
//		Path("24", "layout", "3").
//		Detail("field size is negative").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownTag(errors.PhaseDecode, tag)
//	err := errors.IO(errors.PhaseLoad, path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
