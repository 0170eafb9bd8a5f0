package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // corpus to JSON
	PhaseDecode Phase = "decode" // JSON to corpus
	PhaseLoad   Phase = "load"   // shard files and directories
	PhaseRepair Phase = "repair" // bit/byte size repair
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownTag  Kind = "unknown_tag"  // unregistered "T" discriminant
	KindInvalidData Kind = "invalid_data" // malformed entity payload
	KindBitWidth    Kind = "bit_width"    // field size not byte-aligned
	KindIO          Kind = "io"           // file open/read/write failure
	KindNotFound    Kind = "not_found"    // missing shard or directory entry
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Tag    string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Tag != "" {
		b.WriteString(": tag ")
		b.WriteString(e.Tag)
	}

	if e.Detail != "" {
		if e.Tag != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the entity path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Tag sets the wire discriminant involved
func (b *Builder) Tag(tag string) *Builder {
	b.err.Tag = tag
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownTag creates an unknown discriminant error. The tag may be any
// JSON value, so it is carried verbatim.
func UnknownTag(phase Phase, tag any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownTag,
		Tag:    fmt.Sprintf("%v", tag),
		Detail: "no entity registered for discriminant",
		Value:  tag,
	}
}

// InvalidData creates a malformed payload error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// BitWidth creates a non-byte-aligned field size error
func BitWidth(typeName string, bits int) *Error {
	return &Error{
		Phase:  PhaseRepair,
		Kind:   KindBitWidth,
		Path:   []string{typeName},
		Detail: fmt.Sprintf("field size %d bits is not divisible by 8", bits),
		Value:  bits,
	}
}

// IO wraps a file system failure
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindIO,
		Path:  []string{path},
		Cause: cause,
	}
}

// NotFound creates a missing shard error
func NotFound(phase Phase, path string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Path:   []string{path},
		Detail: "no shard files found",
	}
}
