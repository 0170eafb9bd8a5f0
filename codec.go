package typelib

import (
	"strconv"

	"github.com/binsight/typelib/errors"
	"github.com/binsight/typelib/internal/json"
	"github.com/binsight/typelib/types"
)

// TagEntryList is the discriminant of a standalone entry list
// document. Entry lists inside a library document are bare pair
// arrays; only the standalone form carries a tag.
const TagEntryList = "E"

// Codec encodes and decodes corpus entities. The zero value is ready
// to use. Decoding dispatches on the "T" discriminant and fails hard
// on tags outside the closed table: an unregistered tag means a
// corrupt or version-mismatched document, never a recoverable state.
type Codec struct{}

type entryListDoc struct {
	T string     `json:"T"`
	E *EntryList `json:"e"`
}

// Encode encodes a *TypeLib, *EntryList, Type or Member as compact
// JSON.
func (Codec) Encode(v any) ([]byte, error) {
	switch v := v.(type) {
	case *TypeLib:
		return json.Marshal(v)
	case *EntryList:
		return json.Marshal(entryListDoc{T: TagEntryList, E: v})
	case types.Type, types.Member:
		return json.Marshal(v)
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Detail("cannot encode %T", v).
			Build()
	}
}

// Decode decodes any tagged document, returning a *TypeLib,
// *EntryList, types.Type or types.Member depending on the
// discriminant.
func (c Codec) Decode(data []byte) (any, error) {
	var probe struct {
		T json.RawMessage `json:"T"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Cause(err).
			Detail("malformed document").
			Build()
	}
	if len(probe.T) == 0 {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "document has no \"T\" discriminant")
	}

	var stringTag string
	if err := json.Unmarshal(probe.T, &stringTag); err == nil {
		if stringTag == TagEntryList {
			return c.DecodeEntryList(data)
		}
		return nil, errors.UnknownTag(errors.PhaseDecode, stringTag)
	}

	var tag int
	if err := json.Unmarshal(probe.T, &tag); err != nil {
		return nil, errors.UnknownTag(errors.PhaseDecode, string(probe.T))
	}
	switch tag {
	case types.TagLibrary:
		return c.DecodeLibrary(data)
	case types.TagField, types.TagPadding:
		return types.DecodeMember(data)
	default:
		return types.DecodeType(data)
	}
}

// DecodeLibrary decodes a full library document: string byte-size keys
// mapping to pair lists, plus the library discriminant.
func (Codec) DecodeLibrary(data []byte) (*TypeLib, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Cause(err).
			Detail("malformed library document").
			Build()
	}
	rawTag, ok := doc["T"]
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "library document has no \"T\" discriminant")
	}
	var tag int
	if err := json.Unmarshal(rawTag, &tag); err != nil || tag != types.TagLibrary {
		return nil, errors.UnknownTag(errors.PhaseDecode, string(rawTag))
	}

	lib := New()
	for key, raw := range doc {
		if key == "T" {
			continue
		}
		size, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(key).
				Cause(err).
				Detail("bucket key is not a byte size").
				Build()
		}
		el, err := decodeEntryPairs(raw, key)
		if err != nil {
			return nil, err
		}
		lib.AddEntryList(size, el)
	}
	return lib, nil
}

// DecodeEntryList decodes either a standalone tagged entry list
// document or a bare pair array.
func (Codec) DecodeEntryList(data []byte) (*EntryList, error) {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return decodeEntryPairs(data, "")
		}
		break
	}
	var doc struct {
		T string          `json:"T"`
		E json.RawMessage `json:"e"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Cause(err).
			Detail("malformed entry list document").
			Build()
	}
	if doc.T != TagEntryList {
		return nil, errors.UnknownTag(errors.PhaseDecode, doc.T)
	}
	return decodeEntryPairs(doc.E, "")
}

func decodeEntryPairs(data json.RawMessage, path string) (*EntryList, error) {
	var rawPairs []json.RawMessage
	if err := json.Unmarshal(data, &rawPairs); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(path).
			Cause(err).
			Detail("entry list is not an array").
			Build()
	}
	el := NewEntryList()
	for i, rawPair := range rawPairs {
		var pair []json.RawMessage
		if err := json.Unmarshal(rawPair, &pair); err != nil || len(pair) != 2 {
			return nil, errors.InvalidData(errors.PhaseDecode, []string{path, strconv.Itoa(i)},
				"entry must be a [frequency, type] pair")
		}
		var freq int
		if err := json.Unmarshal(pair[0], &freq); err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path, strconv.Itoa(i)).
				Cause(err).
				Detail("entry frequency is not an integer").
				Build()
		}
		t, err := types.DecodeType(pair[1])
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(path, strconv.Itoa(i)).
				Cause(err).
				Build()
		}
		el.AddEntry(Entry{Frequency: freq, Type: t})
	}
	return el, nil
}

// MarshalJSON encodes the corpus as a library document.
func (lib *TypeLib) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(lib.buckets)+1)
	doc["T"] = types.TagLibrary
	for size, el := range lib.buckets {
		doc[strconv.Itoa(size)] = el
	}
	return json.Marshal(doc)
}
