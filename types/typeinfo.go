package types

import "strconv"

// PointerSize is the byte width of pointers in the corpus. The corpus
// targets 64-bit binaries.
const PointerSize = 8

// Type describes the byte-level layout of a recovered type.
type Type interface {
	// Size is the total footprint in bytes.
	Size() int

	// Key is a stable structural identity. Two types are the same
	// corpus slot iff their keys are equal.
	Key() string

	// AccessibleOffsets lists the byte offsets holding real data,
	// in ascending order.
	AccessibleOffsets() []int

	// InaccessibleOffsets lists the padding byte offsets, in ascending
	// order. Disjoint from AccessibleOffsets; together they cover
	// [0, Size) exactly.
	InaccessibleOffsets() []int

	// StartOffsets lists the offsets at which a field legally begins,
	// in ascending order.
	StartOffsets() []int

	// ReplacableWith reports whether the ordered sequence others can
	// legally occupy this type's footprint.
	ReplacableWith(others []Type) bool

	String() string
	MarshalJSON() ([]byte, error)
}

// Scalar is a leaf type: int, char, float and friends. Every byte is
// accessible and the single field starts at offset 0.
type Scalar struct {
	Name     string
	ByteSize int
}

func (s *Scalar) Size() int                  { return s.ByteSize }
func (s *Scalar) Key() string                { return entityKey(s) }
func (s *Scalar) AccessibleOffsets() []int   { return byteRange(0, s.ByteSize) }
func (s *Scalar) InaccessibleOffsets() []int { return nil }
func (s *Scalar) StartOffsets() []int        { return []int{0} }
func (s *Scalar) String() string             { return s.Name }

func (s *Scalar) ReplacableWith(others []Type) bool {
	return replacableWith(s, others)
}

// Pointer references its target type by name, not by value; recursive
// data structures would otherwise recurse indefinitely. Pointers are
// never substituted by other types.
type Pointer struct {
	TargetTypeName string
}

func (p *Pointer) Size() int                         { return PointerSize }
func (p *Pointer) Key() string                       { return entityKey(p) }
func (p *Pointer) AccessibleOffsets() []int          { return byteRange(0, PointerSize) }
func (p *Pointer) InaccessibleOffsets() []int        { return nil }
func (p *Pointer) StartOffsets() []int               { return []int{0} }
func (p *Pointer) ReplacableWith(others []Type) bool { return false }
func (p *Pointer) String() string                    { return p.TargetTypeName + " *" }

// FunctionPointer carries only a symbolic name. Function signatures are
// too ambiguous to substitute, so it is never replaceable.
type FunctionPointer struct {
	Name string
}

func (f *FunctionPointer) Size() int                         { return PointerSize }
func (f *FunctionPointer) Key() string                       { return entityKey(f) }
func (f *FunctionPointer) AccessibleOffsets() []int          { return byteRange(0, PointerSize) }
func (f *FunctionPointer) InaccessibleOffsets() []int        { return nil }
func (f *FunctionPointer) StartOffsets() []int               { return []int{0} }
func (f *FunctionPointer) ReplacableWith(others []Type) bool { return false }
func (f *FunctionPointer) String() string                    { return f.Name }

// Array is a run of NumElements elements of a named element type.
type Array struct {
	ElementType string
	ElementSize int
	NumElements int
}

func (a *Array) Size() int                  { return a.ElementSize * a.NumElements }
func (a *Array) Key() string                { return entityKey(a) }
func (a *Array) AccessibleOffsets() []int   { return byteRange(0, a.Size()) }
func (a *Array) InaccessibleOffsets() []int { return nil }

// StartOffsets returns every ElementSize-th offset: int[4] has start
// offsets [0, 4, 8, 12] for 4-byte ints.
func (a *Array) StartOffsets() []int {
	if a.ElementSize <= 0 {
		return nil
	}
	offs := make([]int, 0, a.NumElements)
	for off := 0; off < a.Size(); off += a.ElementSize {
		offs = append(offs, off)
	}
	return offs
}

func (a *Array) ReplacableWith(others []Type) bool {
	return replacableWith(a, others)
}

func (a *Array) String() string {
	if a.NumElements == 0 {
		return a.ElementType + "[]"
	}
	return a.ElementType + "[" + strconv.Itoa(a.NumElements) + "]"
}

// Void is the zero-size terminal type.
type Void struct{}

func (Void) Size() int                           { return 0 }
func (v Void) Key() string                       { return entityKey(v) }
func (Void) AccessibleOffsets() []int            { return nil }
func (Void) InaccessibleOffsets() []int          { return nil }
func (Void) StartOffsets() []int                 { return []int{0} }
func (v Void) ReplacableWith(others []Type) bool { return replacableWith(v, others) }
func (Void) String() string                      { return "void" }

// Disappear marks a variable absent from the ground truth.
type Disappear struct{}

func (Disappear) Size() int                           { return 0 }
func (d Disappear) Key() string                       { return entityKey(d) }
func (Disappear) AccessibleOffsets() []int            { return nil }
func (Disappear) InaccessibleOffsets() []int          { return nil }
func (Disappear) StartOffsets() []int                 { return []int{0} }
func (d Disappear) ReplacableWith(others []Type) bool { return replacableWith(d, others) }
func (Disappear) String() string                      { return "disappear" }

// replacableWith implements the structural substitution check shared by
// all replaceable variants: the candidate sequence must have the same
// total size, its concatenated start offsets must be a superset of
// t's (a replacement may subdivide fields but not merge them), and its
// concatenated accessible and inaccessible offsets must equal t's
// byte for byte.
func replacableWith(t Type, others []Type) bool {
	total := 0
	for _, o := range others {
		total += o.Size()
	}
	if t.Size() != total {
		return false
	}

	var otherStart, otherAccessible, otherInaccessible []int
	cur := 0
	for _, o := range others {
		otherStart = appendDisplaced(otherStart, o.StartOffsets(), cur)
		otherAccessible = appendDisplaced(otherAccessible, o.AccessibleOffsets(), cur)
		otherInaccessible = appendDisplaced(otherInaccessible, o.InaccessibleOffsets(), cur)
		cur += o.Size()
	}

	return subsetOf(t.StartOffsets(), otherStart) &&
		equalOffsets(t.AccessibleOffsets(), otherAccessible) &&
		equalOffsets(t.InaccessibleOffsets(), otherInaccessible)
}

func byteRange(from, to int) []int {
	if to <= from {
		return nil
	}
	offs := make([]int, to-from)
	for i := range offs {
		offs[i] = from + i
	}
	return offs
}

func appendDisplaced(dst, offs []int, by int) []int {
	for _, off := range offs {
		dst = append(dst, off+by)
	}
	return dst
}

func equalOffsets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// subsetOf reports whether every element of sub occurs in super. Both
// slices must be ascending.
func subsetOf(sub, super []int) bool {
	j := 0
	for _, v := range sub {
		for j < len(super) && super[j] < v {
			j++
		}
		if j == len(super) || super[j] != v {
			return false
		}
		j++
	}
	return true
}
