package typelib

import (
	"go.uber.org/zap"

	"github.com/binsight/typelib/types"
)

// FixReport accounts for a repair pass so dropped entries are
// observable rather than silently missing.
type FixReport struct {
	Scanned   int // entries examined
	Converted int // structs whose field sizes were converted from bits to bytes
	Dropped   int // entries with a field width not divisible by 8
}

// Fix rebuilds the corpus with struct field sizes converted from bits
// to bytes. Some sources report struct member widths in bits; a field
// recorded as 32 becomes 4 bytes and the struct size is recomputed
// from the corrected layout. Nested structs are converted recursively.
// Entries containing a width not divisible by 8 are dropped from the
// result; the input library is never mutated.
func (lib *TypeLib) Fix() (*TypeLib, FixReport) {
	fixed := New()
	var report FixReport
	for _, size := range lib.Sizes() {
		for _, e := range lib.buckets[size].Entries() {
			report.Scanned++
			t := e.Type
			if s, ok := t.(*types.Struct); ok {
				repaired, ok := fixStruct(s)
				if !ok {
					report.Dropped++
					continue
				}
				report.Converted++
				t = repaired
			}
			el, ok := fixed.buckets[t.Size()]
			if !ok {
				el = NewEntryList()
				fixed.buckets[t.Size()] = el
			}
			el.AddEntry(Entry{Frequency: e.Frequency, Type: t})
		}
	}
	fixed.bump()
	Logger().Info("repaired type library",
		zap.Int("scanned", report.Scanned),
		zap.Int("converted", report.Converted),
		zap.Int("dropped", report.Dropped))
	return fixed, report
}

func fixStruct(s *types.Struct) (*types.Struct, bool) {
	layout := make([]types.Member, 0, len(s.Layout))
	for _, m := range s.Layout {
		switch m := m.(type) {
		case *types.Field:
			if m.ByteSize%8 != 0 {
				return nil, false
			}
			layout = append(layout, &types.Field{Name: m.Name, TypeName: m.TypeName, ByteSize: m.ByteSize / 8})
		case *types.Struct:
			repaired, ok := fixStruct(m)
			if !ok {
				return nil, false
			}
			layout = append(layout, repaired)
		default:
			layout = append(layout, m)
		}
	}
	return &types.Struct{Name: s.Name, Layout: layout}, true
}
