// Package typelib maintains a frequency-ranked corpus of byte-level
// type layouts recovered from binaries and answers structural layout
// questions against it.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	typelib/             Corpus (TypeLib), frequency lists, replacement search, codec
//	├── types/           TypeInfo variants, members and the offset algebra
//	├── errors/          Structured error types
//	└── internal/json/   JSON backend wrapper
//
// # Quick Start
//
// Build a corpus and search it:
//
//	lib := typelib.New()
//	lib.Add(&types.Scalar{Name: "int", ByteSize: 4})
//	lib.Add(&types.Struct{Name: "point", Layout: []types.Member{
//		&types.Field{Name: "x", TypeName: "int", ByteSize: 4},
//		&types.Field{Name: "y", TypeName: "int", ByteSize: 4},
//	}})
//
//	candidates := lib.NextReplacements([]int{0, 1, 2, 3}, []int{0})
//
// Corpora built in parallel are merged shard by shard:
//
//	lib, err := typelib.LoadDir("corpus/")
//
// # Corpus Lifecycle
//
// A TypeLib accumulates types through Add, AddEntryList and
// AddJSONFile, may be repaired with Fix (bit-sized struct fields
// converted to bytes, unrepairable entries dropped) and thinned with
// Prune. The replacement search keeps a shape cache keyed by
// (accessible offsets, start offsets); the cache tracks the library's
// revision counter and rebuilds itself after any mutation.
//
// # Wire Format
//
// A corpus crosses process boundaries only as tagged JSON, optionally
// gzip-compressed on disk. Every entity carries an integer "T"
// discriminant; the library document maps string byte sizes to lists
// of [frequency, type] pairs. See Codec.
package typelib
