package types

import "strconv"

// Member is an element of a Struct layout or a Union member list:
// a Field, a Padding run, or a nested Struct/Union.
type Member interface {
	Size() int
	Key() string
	String() string
	MarshalJSON() ([]byte, error)
}

// Field is a named slot of a struct or union. The field's type is
// referenced by name, never owned; aggregates resolve it against the
// library when needed.
type Field struct {
	Name     string
	TypeName string
	ByteSize int
}

func (f *Field) Size() int      { return f.ByteSize }
func (f *Field) Key() string    { return entityKey(f) }
func (f *Field) String() string { return f.TypeName + " " + f.Name }

// Padding is a run of inaccessible bytes in a struct or union.
type Padding struct {
	ByteSize int
}

func (p *Padding) Size() int      { return p.ByteSize }
func (p *Padding) Key() string    { return entityKey(p) }
func (p *Padding) String() string { return "PADDING (" + strconv.Itoa(p.ByteSize) + ")" }
