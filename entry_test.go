package typelib

import (
	"testing"

	"github.com/binsight/typelib/types"
)

func scalar(name string, size int) *types.Scalar {
	return &types.Scalar{Name: name, ByteSize: size}
}

func TestEntryListAdd(t *testing.T) {
	l := NewEntryList()

	if existed := l.Add(scalar("int", 4)); existed {
		t.Error("first Add reported an existing slot")
	}
	if existed := l.Add(scalar("int", 4)); !existed {
		t.Error("second Add did not report the existing slot")
	}
	if freq, ok := l.Freq(scalar("int", 4)); !ok || freq != 2 {
		t.Errorf("Freq = %d,%v, want 2,true", freq, ok)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}

	l.AddN(scalar("float", 4), 5)
	if freq, ok := l.Freq(scalar("float", 4)); !ok || freq != 5 {
		t.Errorf("Freq = %d,%v, want 5,true", freq, ok)
	}
	if _, ok := l.Freq(scalar("double", 8)); ok {
		t.Error("Freq found a type never added")
	}
}

func TestEntryListOrdering(t *testing.T) {
	l := NewEntryList()
	l.AddN(scalar("rare", 4), 1)
	l.AddN(scalar("common", 4), 10)
	l.AddN(scalar("mid", 4), 5)

	entries := l.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Frequency > entries[i].Frequency {
			t.Fatalf("entries out of order: %v", entries)
		}
	}
	if l.At(0).Type.String() != "rare" {
		t.Errorf("At(0) = %s, want rare", l.At(0).Type.String())
	}
	if l.At(l.Len()-1).Type.String() != "common" {
		t.Errorf("At(last) = %s, want common", l.At(l.Len()-1).Type.String())
	}

	// bumping a frequency must re-rank
	l.AddN(scalar("rare", 4), 100)
	if l.At(l.Len()-1).Type.String() != "rare" {
		t.Errorf("At(last) after bump = %s, want rare", l.At(l.Len()-1).Type.String())
	}
}

func TestEntryListAddAll(t *testing.T) {
	a := NewEntryList()
	a.AddN(scalar("int", 4), 3)
	a.AddN(scalar("float", 4), 1)

	b := NewEntryList()
	b.AddN(scalar("int", 4), 2)
	b.AddN(scalar("unsigned", 4), 7)

	a.AddAll(b)
	if freq, _ := a.Freq(scalar("int", 4)); freq != 5 {
		t.Errorf("merged freq = %d, want 5", freq)
	}
	if freq, _ := a.Freq(scalar("unsigned", 4)); freq != 7 {
		t.Errorf("merged freq = %d, want 7", freq)
	}
	if a.Len() != 3 {
		t.Errorf("Len = %d, want 3", a.Len())
	}
	if a.TotalFrequency() != 13 {
		t.Errorf("TotalFrequency = %d, want 13", a.TotalFrequency())
	}
}

func TestEntryListPrune(t *testing.T) {
	l := NewEntryList()
	l.AddN(scalar("rare", 4), 1)
	l.AddN(scalar("mid", 4), 5)
	l.AddN(scalar("common", 4), 10)

	l.Prune(5)
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if _, ok := l.Freq(scalar("rare", 4)); ok {
		t.Error("prune kept an entry below the threshold")
	}
	if freq, ok := l.Freq(scalar("mid", 4)); !ok || freq != 5 {
		t.Error("prune dropped an entry at the threshold")
	}
	if freq, ok := l.Freq(scalar("common", 4)); !ok || freq != 10 {
		t.Error("prune dropped an entry above the threshold")
	}
}
