package typelib

import (
	"sort"
	"strconv"

	"github.com/binsight/typelib/types"
)

// cacheSizeCeiling bounds which buckets the shape cache indexes.
// Larger aggregates are rare and never useful as substitution
// candidates, while indexing them dominates cache build time.
const cacheSizeCeiling = 1024

// Candidate is one legal way to begin decomposing a layout: a set of
// known types sharing the consumed shape, plus the offsets left over
// once one of them is placed.
type Candidate struct {
	Types          []types.Type
	RestAccessible []int
	RestStart      []int
}

type replacementCache struct {
	rev    uint64
	shapes map[string][]types.Type
}

// shapeKey builds a map key from an (accessible, start) offset pair.
func shapeKey(accessible, starts []int) string {
	buf := make([]byte, 0, 4*(len(accessible)+len(starts))+1)
	for _, off := range accessible {
		buf = strconv.AppendInt(buf, int64(off), 10)
		buf = append(buf, ',')
	}
	buf = append(buf, '|')
	for _, off := range starts {
		buf = strconv.AppendInt(buf, int64(off), 10)
		buf = append(buf, ',')
	}
	return string(buf)
}

// replacementDict returns the shape cache, rebuilding it when the
// library has mutated since the cache was built. Types within a shape
// are ordered by descending corpus frequency.
func (lib *TypeLib) replacementDict() map[string][]types.Type {
	if lib.cache != nil && lib.cache.rev == lib.rev {
		return lib.cache.shapes
	}
	shapes := make(map[string][]types.Type)
	for size, el := range lib.buckets {
		if size > cacheSizeCeiling {
			continue
		}
		entries := el.Entries()
		for i := len(entries) - 1; i >= 0; i-- {
			t := entries[i].Type
			k := shapeKey(t.AccessibleOffsets(), t.StartOffsets())
			shapes[k] = append(shapes[k], t)
		}
	}
	lib.cache = &replacementCache{rev: lib.rev, shapes: shapes}
	return shapes
}

// NextReplacements enumerates the legal first steps of decomposing a
// memory layout into known types. accessible holds the non-padding
// byte offsets, starts the legal field start offsets; both ascending.
//
// No step is legal when the layout begins off a field boundary, when a
// candidate size would leave start offsets misaligned with the first
// remaining accessible byte, or when it would exhaust start offsets
// while accessible bytes remain.
func (lib *TypeLib) NextReplacements(accessible, starts []int) []Candidate {
	if len(accessible) == 0 || len(starts) == 0 || accessible[0] != starts[0] {
		return nil
	}
	shapes := lib.replacementDict()
	start := accessible[0]
	length := accessible[len(accessible)-1] - start + 1

	var out []Candidate
	for _, size := range lib.Sizes() {
		if size == 0 || size > length {
			continue
		}
		cut := start + size
		restA := tailFrom(accessible, cut)
		restS := tailFrom(starts, cut)
		if len(restS) != 0 && (len(restA) == 0 || restS[0] != restA[0]) {
			continue
		}
		if len(restS) == 0 && len(restA) != 0 {
			continue
		}
		curA := shiftedPrefix(accessible, cut, start)
		curS := shiftedPrefix(starts, cut, start)
		typs := shapes[shapeKey(curA, curS)]
		if len(typs) == 0 {
			continue
		}
		out = append(out, Candidate{Types: typs, RestAccessible: restA, RestStart: restS})
	}
	return out
}

// ValidLayoutForTypes reports whether the layout can be consumed by ts
// in order, greedily taking at each step the first candidate whose
// type set contains the required type.
func (lib *TypeLib) ValidLayoutForTypes(accessible, starts []int, ts []types.Type) bool {
	restA, restS := accessible, starts
	for _, want := range ts {
		if len(restA) == 0 {
			return false
		}
		found := false
		for _, c := range lib.NextReplacements(restA, restS) {
			if containsType(c.Types, want) {
				restA, restS = c.RestAccessible, c.RestStart
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Replacements enumerates every decomposition of the layout implied by
// laying out ts consecutively from offset 0. The input sequence itself
// is among the results when each of its types is in the corpus.
func (lib *TypeLib) Replacements(ts []types.Type) [][]types.Type {
	if len(ts) == 0 {
		return nil
	}
	accessible := AccessibleOfTypes(ts)
	starts := StartOffsetsOfTypes(ts)

	var out [][]types.Type
	var walk func(prefix []types.Type, restA, restS []int)
	walk = func(prefix []types.Type, restA, restS []int) {
		if len(restA) == 0 {
			decomposition := make([]types.Type, len(prefix))
			copy(decomposition, prefix)
			out = append(out, decomposition)
			return
		}
		for _, c := range lib.NextReplacements(restA, restS) {
			for _, t := range c.Types {
				walk(append(prefix[:len(prefix):len(prefix)], t), c.RestAccessible, c.RestStart)
			}
		}
	}
	walk(nil, accessible, starts)
	return out
}

// AccessibleOfTypes concatenates the accessible offsets of types laid
// out consecutively from offset 0. Suitable as NextReplacements input.
func AccessibleOfTypes(ts []types.Type) []int {
	var offs []int
	offset := 0
	for _, t := range ts {
		for _, a := range t.AccessibleOffsets() {
			offs = append(offs, offset+a)
		}
		offset += t.Size()
	}
	return offs
}

// StartOffsetsOfTypes concatenates the start offsets of types laid out
// consecutively from offset 0.
func StartOffsetsOfTypes(ts []types.Type) []int {
	var offs []int
	offset := 0
	for _, t := range ts {
		for _, s := range t.StartOffsets() {
			offs = append(offs, offset+s)
		}
		offset += t.Size()
	}
	return offs
}

// tailFrom returns the suffix of ascending offs at or beyond cut.
func tailFrom(offs []int, cut int) []int {
	i := sort.SearchInts(offs, cut)
	return offs[i:]
}

// shiftedPrefix returns the elements of ascending offs below cut,
// rebased so the consumed range starts at zero.
func shiftedPrefix(offs []int, cut, base int) []int {
	i := sort.SearchInts(offs, cut)
	prefix := make([]int, i)
	for j := 0; j < i; j++ {
		prefix[j] = offs[j] - base
	}
	return prefix
}

func containsType(ts []types.Type, want types.Type) bool {
	key := want.Key()
	for _, t := range ts {
		if t.Key() == key {
			return true
		}
	}
	return false
}
