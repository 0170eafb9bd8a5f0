package types

import "strings"

// Struct is an ordered layout of fields, padding runs and nested
// aggregates. Its size is the sum of its layout element sizes; there
// is no implicit alignment, padding is always explicit.
type Struct struct {
	Name   string
	Layout []Member
}

func (s *Struct) Size() int {
	total := 0
	for _, m := range s.Layout {
		total += m.Size()
	}
	return total
}

func (s *Struct) Key() string { return entityKey(s) }

// HasPadding reports whether any layout element is a Padding run.
func (s *Struct) HasPadding() bool {
	for _, m := range s.Layout {
		if _, ok := m.(*Padding); ok {
			return true
		}
	}
	return false
}

// AccessibleOffsets walks the layout with a cursor: field bytes are
// accessible, padding is not, and nested aggregates contribute their
// own accessible bytes displaced to the cursor.
func (s *Struct) AccessibleOffsets() []int {
	var offs []int
	cur := 0
	for _, m := range s.Layout {
		switch m := m.(type) {
		case *Field:
			offs = append(offs, byteRange(cur, cur+m.ByteSize)...)
		case *Padding:
			// padding only
		case Type:
			offs = appendDisplaced(offs, m.AccessibleOffsets(), cur)
		}
		cur += m.Size()
	}
	return offs
}

func (s *Struct) InaccessibleOffsets() []int {
	var offs []int
	cur := 0
	for _, m := range s.Layout {
		switch m := m.(type) {
		case *Field:
			// all accessible
		case *Padding:
			offs = append(offs, byteRange(cur, cur+m.ByteSize)...)
		case Type:
			offs = appendDisplaced(offs, m.InaccessibleOffsets(), cur)
		}
		cur += m.Size()
	}
	return offs
}

// StartOffsets returns the offset of every field. A layout of
// [int, char, padding(3), long, long] has start offsets [0, 4, 8, 16]
// for 4-byte ints and 8-byte longs.
func (s *Struct) StartOffsets() []int {
	var offs []int
	cur := 0
	for _, m := range s.Layout {
		switch m := m.(type) {
		case *Field:
			offs = append(offs, cur)
		case *Padding:
			// fields only
		case Type:
			offs = appendDisplaced(offs, m.StartOffsets(), cur)
		}
		cur += m.Size()
	}
	return offs
}

func (s *Struct) ReplacableWith(others []Type) bool {
	return replacableWith(s, others)
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("struct ")
	if s.Name != "" {
		b.WriteString(s.Name)
		b.WriteByte(' ')
	}
	b.WriteString("{ ")
	for _, m := range s.Layout {
		b.WriteString(m.String())
		b.WriteString("; ")
	}
	b.WriteByte('}')
	return b.String()
}

// Union overlays its members at offset 0. All bytes up to the largest
// member are accessible; if the union is wider than its largest member
// the excess is a trailing Padding run.
type Union struct {
	Name    string
	Members []Member
	Padding *Padding
}

func (u *Union) Size() int {
	size := u.maxMemberSize()
	if u.Padding != nil {
		size += u.Padding.ByteSize
	}
	return size
}

func (u *Union) maxMemberSize() int {
	max := 0
	for _, m := range u.Members {
		if m.Size() > max {
			max = m.Size()
		}
	}
	return max
}

func (u *Union) Key() string { return entityKey(u) }

// HasPadding reports whether the union carries trailing padding.
func (u *Union) HasPadding() bool { return u.Padding != nil }

func (u *Union) AccessibleOffsets() []int {
	return byteRange(0, u.maxMemberSize())
}

func (u *Union) InaccessibleOffsets() []int {
	if u.Padding == nil {
		return nil
	}
	return byteRange(u.maxMemberSize(), u.Size())
}

func (u *Union) StartOffsets() []int { return []int{0} }

func (u *Union) ReplacableWith(others []Type) bool {
	return replacableWith(u, others)
}

func (u *Union) String() string {
	var b strings.Builder
	b.WriteString("union ")
	if u.Name != "" {
		b.WriteString(u.Name)
		b.WriteByte(' ')
	}
	b.WriteString("{ ")
	for _, m := range u.Members {
		b.WriteString(m.String())
		b.WriteString("; ")
	}
	if u.Padding != nil {
		b.WriteString(u.Padding.String())
		b.WriteString("; ")
	}
	b.WriteByte('}')
	return b.String()
}
