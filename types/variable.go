package types

import (
	"strconv"

	"github.com/binsight/typelib/errors"
	"github.com/binsight/typelib/internal/json"
)

// Location is where a variable lives in a function frame: a register
// or a stack slot.
type Location interface {
	// JSONKey renders the location as a compact map key, "r14" for
	// register 14 or "s82" for stack offset 82.
	JSONKey() string
	String() string
}

// Register identifies a machine register by number.
type Register struct {
	Name int
}

func (r Register) JSONKey() string { return "r" + strconv.Itoa(r.Name) }
func (r Register) String() string  { return "Reg " + strconv.Itoa(r.Name) }

// Stack is an offset from the frame base pointer.
type Stack struct {
	Offset int
}

func (s Stack) JSONKey() string { return "s" + strconv.Itoa(s.Offset) }
func (s Stack) String() string  { return "Stk 0x" + strconv.FormatInt(int64(s.Offset), 16) }

// ParseLocation parses a JSONKey-form location.
func ParseLocation(key string) (Location, error) {
	if len(key) < 2 {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{key}, "location key too short")
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(key).
			Cause(err).
			Detail("location key has no numeric suffix").
			Build()
	}
	switch key[0] {
	case 'r':
		return Register{Name: n}, nil
	case 's':
		return Stack{Offset: n}, nil
	default:
		return nil, errors.InvalidData(errors.PhaseDecode, []string{key}, "location key must start with 'r' or 's'")
	}
}

// Variable is a typed variable slot observed in a function. User marks
// names chosen by a human rather than the decompiler.
type Variable struct {
	Typ  Type
	Name string
	User bool
}

type variableJSON struct {
	T json.RawMessage `json:"t"`
	N string          `json:"n"`
	U bool            `json:"u"`
}

func (v *Variable) MarshalJSON() ([]byte, error) {
	typ, err := json.Marshal(v.Typ)
	if err != nil {
		return nil, err
	}
	return json.Marshal(variableJSON{T: typ, N: v.Name, U: v.User})
}

// DecodeVariable decodes a variable and its embedded type.
func DecodeVariable(data []byte) (*Variable, error) {
	var w variableJSON
	if err := unmarshalWire(data, &w); err != nil {
		return nil, err
	}
	typ, err := DecodeType(w.T)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(w.N).
			Cause(err).
			Detail("variable type").
			Build()
	}
	return &Variable{Typ: typ, Name: w.N, User: w.U}, nil
}

func (v *Variable) String() string {
	source := "A"
	if v.User {
		source = "U"
	}
	return v.Typ.String() + " " + v.Name + " (" + source + ")"
}
