package typelib

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	liberrors "github.com/binsight/typelib/errors"
	"github.com/binsight/typelib/types"
)

func sampleLibrary() *TypeLib {
	lib := New()
	lib.Add(scalar("char", 1))
	for i := 0; i < 3; i++ {
		lib.Add(scalar("int", 4))
	}
	lib.Add(&types.Pointer{TargetTypeName: "node"})
	lib.Add(&types.Struct{Name: "node", Layout: []types.Member{
		&types.Field{Name: "value", TypeName: "int", ByteSize: 4},
		&types.Padding{ByteSize: 4},
		&types.Field{Name: "next", TypeName: "node *", ByteSize: 8},
	}})
	return lib
}

func assertSameLibrary(t *testing.T, a, b *TypeLib) {
	t.Helper()
	if a.NumEntries() != b.NumEntries() {
		t.Fatalf("entry counts differ: %d vs %d", a.NumEntries(), b.NumEntries())
	}
	for _, size := range a.Sizes() {
		la, _ := a.Bucket(size)
		lb, ok := b.Bucket(size)
		if !ok {
			t.Fatalf("bucket %d missing", size)
		}
		for _, e := range la.Entries() {
			freq, ok := lb.Freq(e.Type)
			if !ok {
				t.Errorf("size %d: type %s missing", size, e.Type)
			} else if freq != e.Frequency {
				t.Errorf("size %d type %s: freq %d, want %d", size, e.Type, freq, e.Frequency)
			}
		}
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	lib := sampleLibrary()

	data, err := Codec{}.Encode(lib)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Codec{}.DecodeLibrary(data)
	if err != nil {
		t.Fatalf("DecodeLibrary: %v", err)
	}
	assertSameLibrary(t, lib, decoded)
}

func TestDecodeDispatch(t *testing.T) {
	c := Codec{}

	t.Run("library", func(t *testing.T) {
		data, _ := c.Encode(sampleLibrary())
		v, err := c.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if _, ok := v.(*TypeLib); !ok {
			t.Errorf("Decode returned %T, want *TypeLib", v)
		}
	})

	t.Run("entry_list", func(t *testing.T) {
		el := NewEntryList()
		el.AddN(scalar("int", 4), 3)
		data, err := c.Encode(el)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		v, err := c.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		decoded, ok := v.(*EntryList)
		if !ok {
			t.Fatalf("Decode returned %T, want *EntryList", v)
		}
		if freq, _ := decoded.Freq(scalar("int", 4)); freq != 3 {
			t.Errorf("freq = %d, want 3", freq)
		}
	})

	t.Run("type", func(t *testing.T) {
		data, _ := c.Encode(scalar("int", 4))
		v, err := c.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if _, ok := v.(*types.Scalar); !ok {
			t.Errorf("Decode returned %T, want *types.Scalar", v)
		}
	})

	t.Run("member", func(t *testing.T) {
		data, _ := c.Encode(&types.Padding{ByteSize: 3})
		v, err := c.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if _, ok := v.(*types.Padding); !ok {
			t.Errorf("Decode returned %T, want *types.Padding", v)
		}
	})

	t.Run("unknown_tag", func(t *testing.T) {
		_, err := c.Decode([]byte(`{"T":42}`))
		want := &liberrors.Error{Phase: liberrors.PhaseDecode, Kind: liberrors.KindUnknownTag}
		if !errors.Is(err, want) {
			t.Errorf("error = %v, want unknown_tag", err)
		}
	})

	t.Run("unknown_string_tag", func(t *testing.T) {
		_, err := c.Decode([]byte(`{"T":"Z"}`))
		want := &liberrors.Error{Phase: liberrors.PhaseDecode, Kind: liberrors.KindUnknownTag}
		if !errors.Is(err, want) {
			t.Errorf("error = %v, want unknown_tag", err)
		}
	})

	t.Run("missing_tag", func(t *testing.T) {
		_, err := c.Decode([]byte(`{"4":[]}`))
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSaveAndMergeFiles(t *testing.T) {
	dir := t.TempDir()

	for _, compressed := range []bool{false, true} {
		name := "plain.json"
		if compressed {
			name = "packed.json.gz"
		}
		t.Run(name, func(t *testing.T) {
			lib := sampleLibrary()
			path := filepath.Join(dir, name)
			if err := lib.SaveFile(path, compressed); err != nil {
				t.Fatalf("SaveFile: %v", err)
			}

			merged := New()
			if err := merged.AddJSONFile(path); err != nil {
				t.Fatalf("AddJSONFile: %v", err)
			}
			assertSameLibrary(t, lib, merged)
		})
	}
}

func TestAddJSONFileSumsFrequencies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shard.json")

	shard := New()
	shard.Add(scalar("int", 4))
	shard.Add(scalar("int", 4))
	if err := shard.SaveFile(path, false); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	lib := New()
	lib.Add(scalar("int", 4))
	if err := lib.AddJSONFile(path); err != nil {
		t.Fatalf("AddJSONFile: %v", err)
	}
	if freq, _ := mustBucket(t, lib, 4).Freq(scalar("int", 4)); freq != 3 {
		t.Errorf("freq = %d, want 3", freq)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	a := New()
	a.Add(scalar("int", 4))
	a.Add(scalar("char", 1))
	if err := a.SaveFile(filepath.Join(dir, "00.json.gz"), true); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	b := New()
	b.Add(scalar("int", 4))
	b.Add(scalar("long", 8))
	if err := b.SaveFile(filepath.Join(dir, "01.json"), false); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	lib, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if freq, _ := mustBucket(t, lib, 4).Freq(scalar("int", 4)); freq != 2 {
		t.Errorf("int freq = %d, want 2", freq)
	}
	if freq, _ := mustBucket(t, lib, 1).Freq(scalar("char", 1)); freq != 1 {
		t.Errorf("char freq = %d, want 1", freq)
	}
	if freq, _ := mustBucket(t, lib, 8).Freq(scalar("long", 8)); freq != 1 {
		t.Errorf("long freq = %d, want 1", freq)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	want := &liberrors.Error{Phase: liberrors.PhaseLoad, Kind: liberrors.KindNotFound}
	if !errors.Is(err, want) {
		t.Errorf("error = %v, want not_found", err)
	}

	_, err = LoadDir(filepath.Join(os.TempDir(), "definitely-missing-corpus-dir"))
	wantIO := &liberrors.Error{Phase: liberrors.PhaseLoad, Kind: liberrors.KindIO}
	if !errors.Is(err, wantIO) {
		t.Errorf("error = %v, want io", err)
	}
}

func TestDecodeCorruptLibrary(t *testing.T) {
	cases := map[string]string{
		"not_json":      `{`,
		"bad_size_key":  `{"T":1,"abc":[]}`,
		"bad_pair":      `{"T":1,"4":[[1]]}`,
		"bad_freq":      `{"T":1,"4":[["x",{"T":0,"n":"int","s":4}]]}`,
		"bad_type":      `{"T":1,"4":[[1,{"T":42}]]}`,
		"wrong_doc_tag": `{"T":6,"n":"s","l":[]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := (Codec{}).DecodeLibrary([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
