package typelib

import (
	"sort"
	"strconv"
	"strings"

	"github.com/binsight/typelib/internal/json"
	"github.com/binsight/typelib/types"
)

// Entry is one corpus slot: a type and the number of times it has been
// observed. Two entries are the same slot iff their types are
// structurally equal; frequency never participates in identity.
type Entry struct {
	Frequency int
	Type      types.Type
}

// EntryList holds the entries of one size class, at most one per
// structural type, ordered by ascending frequency.
type EntryList struct {
	byKey map[string]*Entry
	order []*Entry
	dirty bool
}

// NewEntryList builds a list from entries. Later duplicates of the
// same type merge into the earlier slot.
func NewEntryList(entries ...Entry) *EntryList {
	l := &EntryList{byKey: make(map[string]*Entry)}
	for _, e := range entries {
		l.AddEntry(e)
	}
	return l
}

func (l *EntryList) init() {
	if l.byKey == nil {
		l.byKey = make(map[string]*Entry)
	}
}

// AddN records n observations of t, inserting a slot at frequency n if
// the type is new. It reports whether the slot already existed.
func (l *EntryList) AddN(t types.Type, n int) bool {
	l.init()
	k := t.Key()
	if e, ok := l.byKey[k]; ok {
		e.Frequency += n
		l.dirty = true
		return true
	}
	e := &Entry{Frequency: n, Type: t}
	l.byKey[k] = e
	l.order = append(l.order, e)
	l.dirty = true
	return false
}

// Add records a single observation of t.
func (l *EntryList) Add(t types.Type) bool {
	return l.AddN(t, 1)
}

// AddEntry merges a whole entry, summing frequencies on collision.
func (l *EntryList) AddEntry(e Entry) bool {
	return l.AddN(e.Type, e.Frequency)
}

// AddAll merges every entry of other into l.
func (l *EntryList) AddAll(other *EntryList) {
	for _, e := range other.Entries() {
		l.AddEntry(e)
	}
}

// Freq returns the observation count of t, reporting whether the type
// is present at all.
func (l *EntryList) Freq(t types.Type) (int, bool) {
	e, ok := l.byKey[t.Key()]
	if !ok {
		return 0, false
	}
	return e.Frequency, true
}

// Len is the number of distinct types in the list.
func (l *EntryList) Len() int { return len(l.order) }

// TotalFrequency sums the frequencies of every entry.
func (l *EntryList) TotalFrequency() int {
	total := 0
	for _, e := range l.order {
		total += e.Frequency
	}
	return total
}

// At returns the entry of ascending-frequency rank i: At(0) is the
// rarest type, At(Len()-1) the most common.
func (l *EntryList) At(i int) Entry {
	l.ensureSorted()
	return *l.order[i]
}

// Entries returns all entries in ascending frequency order. The slice
// is owned by the caller; the entries are copies.
func (l *EntryList) Entries() []Entry {
	l.ensureSorted()
	out := make([]Entry, len(l.order))
	for i, e := range l.order {
		out[i] = *e
	}
	return out
}

// Prune drops every entry observed fewer than min times.
func (l *EntryList) Prune(min int) {
	kept := l.order[:0]
	for _, e := range l.order {
		if e.Frequency >= min {
			kept = append(kept, e)
		} else {
			delete(l.byKey, e.Type.Key())
		}
	}
	l.order = kept
	l.dirty = true
}

// ensureSorted re-sorts after mutations. Frequency ties break on the
// structural key so iteration order is deterministic.
func (l *EntryList) ensureSorted() {
	if !l.dirty {
		return
	}
	sort.Slice(l.order, func(i, j int) bool {
		if l.order[i].Frequency != l.order[j].Frequency {
			return l.order[i].Frequency < l.order[j].Frequency
		}
		return l.order[i].Type.Key() < l.order[j].Type.Key()
	})
	l.dirty = false
}

// MarshalJSON encodes the list as [[frequency, type], ...] in
// ascending frequency order. This is the bucket form used inside a
// library document; Codec wraps standalone lists in a tagged object.
func (l *EntryList) MarshalJSON() ([]byte, error) {
	l.ensureSorted()
	pairs := make([][2]any, len(l.order))
	for i, e := range l.order {
		pairs[i] = [2]any{e.Frequency, e.Type}
	}
	return json.Marshal(pairs)
}

func (l *EntryList) String() string {
	l.ensureSorted()
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(strconv.Itoa(e.Frequency))
		b.WriteString(", ")
		b.WriteString(e.Type.String())
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}
