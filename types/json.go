package types

import (
	"strconv"

	"github.com/binsight/typelib/errors"
	"github.com/binsight/typelib/internal/json"
)

// Wire discriminants carried under the "T" key of every encoded
// entity. The table is closed: decoding dispatches on it exactly and
// an unregistered tag is a hard error.
const (
	TagScalar          = 0
	TagLibrary         = 1 // the library document itself, decoded by the typelib codec
	TagArray           = 2
	TagPointer         = 3
	TagField           = 4
	TagPadding         = 5
	TagStruct          = 6
	TagVoid            = 7
	TagUnion           = 8
	TagFunctionPointer = 9
	TagDisappear       = 10
)

// entityKey derives a structural identity from the wire encoding. The
// wire structs have a fixed field order, so the encoding is canonical.
func entityKey(e interface{ MarshalJSON() ([]byte, error) }) string {
	b, err := e.MarshalJSON()
	if err != nil {
		// the fixed wire structs cannot fail to marshal
		panic(err)
	}
	return string(b)
}

type scalarJSON struct {
	T int    `json:"T"`
	N string `json:"n"`
	S int    `json:"s"`
}

func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(scalarJSON{T: TagScalar, N: s.Name, S: s.ByteSize})
}

type arrayJSON struct {
	T int    `json:"T"`
	N int    `json:"n"`
	S int    `json:"s"`
	E string `json:"t"`
}

func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(arrayJSON{T: TagArray, N: a.NumElements, S: a.ElementSize, E: a.ElementType})
}

type pointerJSON struct {
	T int    `json:"T"`
	P string `json:"t"`
}

func (p *Pointer) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointerJSON{T: TagPointer, P: p.TargetTypeName})
}

type fieldJSON struct {
	T int    `json:"T"`
	N string `json:"n"`
	F string `json:"t"`
	S int    `json:"s"`
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldJSON{T: TagField, N: f.Name, F: f.TypeName, S: f.ByteSize})
}

type paddingJSON struct {
	T int `json:"T"`
	S int `json:"s"`
}

func (p *Padding) MarshalJSON() ([]byte, error) {
	return json.Marshal(paddingJSON{T: TagPadding, S: p.ByteSize})
}

type structJSON struct {
	T int      `json:"T"`
	N string   `json:"n"`
	L []Member `json:"l"`
}

func (s *Struct) MarshalJSON() ([]byte, error) {
	layout := s.Layout
	if layout == nil {
		layout = []Member{}
	}
	return json.Marshal(structJSON{T: TagStruct, N: s.Name, L: layout})
}

type unionJSON struct {
	T int      `json:"T"`
	N string   `json:"n"`
	M []Member `json:"m"`
	P *Padding `json:"p"`
}

func (u *Union) MarshalJSON() ([]byte, error) {
	members := u.Members
	if members == nil {
		members = []Member{}
	}
	return json.Marshal(unionJSON{T: TagUnion, N: u.Name, M: members, P: u.Padding})
}

type funcPointerJSON struct {
	T int    `json:"T"`
	N string `json:"n"`
}

func (f *FunctionPointer) MarshalJSON() ([]byte, error) {
	return json.Marshal(funcPointerJSON{T: TagFunctionPointer, N: f.Name})
}

type tagOnlyJSON struct {
	T int `json:"T"`
}

func (Void) MarshalJSON() ([]byte, error) {
	return json.Marshal(tagOnlyJSON{T: TagVoid})
}

func (Disappear) MarshalJSON() ([]byte, error) {
	return json.Marshal(tagOnlyJSON{T: TagDisappear})
}

// ReadTag extracts the integer "T" discriminant of an encoded entity.
// String discriminants (the entry list document) and missing tags
// report ok=false.
func ReadTag(data []byte) (tag int, ok bool) {
	var probe struct {
		T json.RawMessage `json:"T"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || len(probe.T) == 0 {
		return 0, false
	}
	if err := json.Unmarshal(probe.T, &tag); err != nil {
		return 0, false
	}
	return tag, true
}

// DecodeType decodes an encoded Type variant, dispatching on "T".
func DecodeType(data []byte) (Type, error) {
	tag, ok := ReadTag(data)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "entity has no integer \"T\" discriminant")
	}
	switch tag {
	case TagScalar:
		var w scalarJSON
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		return &Scalar{Name: w.N, ByteSize: w.S}, nil
	case TagArray:
		var w arrayJSON
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		return &Array{ElementType: w.E, ElementSize: w.S, NumElements: w.N}, nil
	case TagPointer:
		var w pointerJSON
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		return &Pointer{TargetTypeName: w.P}, nil
	case TagStruct:
		return decodeStruct(data)
	case TagUnion:
		return decodeUnion(data)
	case TagFunctionPointer:
		var w funcPointerJSON
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		return &FunctionPointer{Name: w.N}, nil
	case TagVoid:
		return Void{}, nil
	case TagDisappear:
		return Disappear{}, nil
	case TagField, TagPadding:
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Tag(strconv.Itoa(tag)).
			Detail("member entity where a type was expected").
			Build()
	default:
		return nil, errors.UnknownTag(errors.PhaseDecode, tag)
	}
}

// DecodeMember decodes a layout element: a Field, a Padding run, or a
// nested Struct/Union.
func DecodeMember(data []byte) (Member, error) {
	tag, ok := ReadTag(data)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "entity has no integer \"T\" discriminant")
	}
	switch tag {
	case TagField:
		var w fieldJSON
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		return &Field{Name: w.N, TypeName: w.F, ByteSize: w.S}, nil
	case TagPadding:
		var w paddingJSON
		if err := unmarshalWire(data, &w); err != nil {
			return nil, err
		}
		return &Padding{ByteSize: w.S}, nil
	case TagStruct:
		return decodeStruct(data)
	case TagUnion:
		return decodeUnion(data)
	default:
		return nil, errors.UnknownTag(errors.PhaseDecode, tag)
	}
}

func decodeStruct(data []byte) (*Struct, error) {
	var w struct {
		N string            `json:"n"`
		L []json.RawMessage `json:"l"`
	}
	if err := unmarshalWire(data, &w); err != nil {
		return nil, err
	}
	layout := make([]Member, 0, len(w.L))
	for i, raw := range w.L {
		m, err := DecodeMember(raw)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(w.N, "layout", strconv.Itoa(i)).
				Cause(err).
				Build()
		}
		layout = append(layout, m)
	}
	return &Struct{Name: w.N, Layout: layout}, nil
}

func decodeUnion(data []byte) (*Union, error) {
	var w struct {
		N string            `json:"n"`
		M []json.RawMessage `json:"m"`
		P json.RawMessage   `json:"p"`
	}
	if err := unmarshalWire(data, &w); err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(w.M))
	for i, raw := range w.M {
		m, err := DecodeMember(raw)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(w.N, "members", strconv.Itoa(i)).
				Cause(err).
				Build()
		}
		members = append(members, m)
	}
	u := &Union{Name: w.N, Members: members}
	if len(w.P) > 0 && string(w.P) != "null" {
		m, err := DecodeMember(w.P)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(w.N, "padding").
				Cause(err).
				Build()
		}
		pad, ok := m.(*Padding)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseDecode, []string{w.N, "padding"}, "union padding must be a padding entity")
		}
		u.Padding = pad
	}
	return u, nil
}

func unmarshalWire(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Cause(err).
			Detail("malformed entity payload").
			Build()
	}
	return nil
}
