package typelib

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/binsight/typelib/types"
)

// TypeLib is the corpus: observed types bucketed by byte size, each
// bucket a frequency-sorted EntryList. Every type held in bucket s has
// Size() == s.
//
// A TypeLib is not safe for concurrent use. Mutations bump an internal
// revision counter; the replacement search cache rebuilds itself when
// it observes a stale revision.
type TypeLib struct {
	buckets map[int]*EntryList
	rev     uint64
	cache   *replacementCache
}

// New returns an empty corpus.
func New() *TypeLib {
	return &TypeLib{buckets: make(map[int]*EntryList)}
}

func (lib *TypeLib) bump() { lib.rev++ }

// Add records one observation of t in the bucket for its size,
// creating the bucket if absent.
func (lib *TypeLib) Add(t types.Type) {
	el, ok := lib.buckets[t.Size()]
	if !ok {
		el = NewEntryList()
		lib.buckets[t.Size()] = el
	}
	el.Add(t)
	lib.bump()
}

// AddEntryList merges a whole size bucket, summing frequencies of
// types already present. This is the shard-merge path: every entry in
// entries must have size size.
func (lib *TypeLib) AddEntryList(size int, entries *EntryList) {
	if el, ok := lib.buckets[size]; ok {
		el.AddAll(entries)
	} else {
		lib.buckets[size] = entries
	}
	lib.bump()
}

// AddAll merges every bucket of other into lib. Merging is commutative
// and associative in per-type frequency.
func (lib *TypeLib) AddAll(other *TypeLib) {
	for size, el := range other.buckets {
		lib.AddEntryList(size, el)
	}
}

// Bucket returns the entry list for a byte size.
func (lib *TypeLib) Bucket(size int) (*EntryList, bool) {
	el, ok := lib.buckets[size]
	return el, ok
}

// Sizes returns the populated byte sizes in ascending order.
func (lib *TypeLib) Sizes() []int {
	sizes := make([]int, 0, len(lib.buckets))
	for size := range lib.buckets {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// NumBuckets is the number of populated size classes.
func (lib *TypeLib) NumBuckets() int { return len(lib.buckets) }

// NumEntries is the number of distinct types across all buckets.
func (lib *TypeLib) NumEntries() int {
	total := 0
	for _, el := range lib.buckets {
		total += el.Len()
	}
	return total
}

// Prune drops every entry observed fewer than min times and removes
// buckets left empty.
func (lib *TypeLib) Prune(min int) {
	dropped := 0
	for size, el := range lib.buckets {
		before := el.Len()
		el.Prune(min)
		dropped += before - el.Len()
		if el.Len() == 0 {
			delete(lib.buckets, size)
		}
	}
	lib.bump()
	Logger().Debug("pruned type library",
		zap.Int("min_frequency", min),
		zap.Int("dropped", dropped),
		zap.Int("buckets", len(lib.buckets)))
}

func (lib *TypeLib) String() string {
	var b strings.Builder
	for _, size := range lib.Sizes() {
		b.WriteString(strconv.Itoa(size))
		b.WriteString(": ")
		b.WriteString(lib.buckets[size].String())
		b.WriteByte('\n')
	}
	return b.String()
}
