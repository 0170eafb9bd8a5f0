// Package types models the byte-level layout of C-like types recovered
// from binaries.
//
// Every type answers three questions about its footprint:
//
//	AccessibleOffsets    byte positions holding real data
//	InaccessibleOffsets  byte positions that are padding
//	StartOffsets         byte positions where a field legally begins
//
// Accessible and inaccessible offsets are disjoint and together cover
// [0, Size) exactly.
//
// # Variants
//
//	Type             Size            Accessible
//	─────────────────────────────────────────────────────
//	Scalar           given           all bytes
//	Pointer          8               all bytes
//	FunctionPointer  8               all bytes
//	Array            elem × count    all bytes
//	Struct           sum of layout   field bytes only
//	Union            max member (+p) [0, max member size)
//	Void             0               —
//	Disappear        0               —
//
// Aggregates reference other types by name, never by value: recursive
// and mutually-recursive structures would otherwise have no finite
// representation. Resolution is a name lookup against the owning
// library.
//
// ReplacableWith is the structural substitution relation: a type may be
// replaced by an ordered sequence of types occupying the same footprint
// with byte-identical data/padding classification. A replacement may
// subdivide a field but never merge fields.
package types
