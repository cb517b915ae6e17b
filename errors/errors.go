package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // Go to JNI
	PhaseDecode   Phase = "decode"   // JNI to Go
	PhaseLookup   Phase = "lookup"   // class, method and field resolution
	PhaseCall     Phase = "call"     // method and constructor invocation
	PhaseField    Phase = "field"    // field access
	PhaseArray    Phase = "array"    // array allocation and element access
	PhaseString   Phase = "string"   // string creation and extraction
	PhaseScope    Phase = "scope"    // call-scope bookkeeping
	PhaseLoad     Phase = "load"     // binding discovery
	PhaseParse    Phase = "parse"    // manifest and type parsing
	PhaseValidate Phase = "validate" // binding validation
	PhaseGenerate Phase = "generate" // export code generation
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch    Kind = "type_mismatch"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindInvalidData     Kind = "invalid_data"
	KindUnsupported     Kind = "unsupported"
	KindAllocation      Kind = "allocation"
	KindInvalidEncoding Kind = "invalid_encoding"
	KindNilPointer      Kind = "nil_pointer"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
	KindException       Kind = "exception"
	KindExpired         Kind = "expired"
	KindCollision       Kind = "collision"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	JavaType string
	Detail   string
	Path     []string
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

	if e.GoType != "" || e.JavaType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.JavaType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", Java type ")
			b.WriteString(e.JavaType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("Java type ")
			b.WriteString(e.JavaType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.JavaType != "" {
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

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
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

// Path sets the member path (class, member, index)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// JavaType sets the Java type or descriptor
func (b *Builder) JavaType(t string) *Builder {
	b.err.JavaType = t
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

// KindOf returns the Kind of err if it is (or wraps) an *Error, and "" otherwise.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, javaType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		JavaType: javaType,
	}
}

// InvalidEncoding creates a string encoding error
func InvalidEncoding(phase Phase, detail string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Detail: fmt.Sprintf("%s at offset %d", detail, index),
		Value:  index,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, what string, length int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %s of length %d", what, length),
		Value:  length,
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a lookup error for a class, method or field
func NotFound(what, name, descriptor string) *Error {
	return &Error{
		Phase:    PhaseLookup,
		Kind:     KindNotFound,
		JavaType: descriptor,
		Detail:   fmt.Sprintf("%s %q not found", what, name),
	}
}

// Exception creates an error for an exception raised by the managed runtime.
// class is the slash-qualified exception class.
func Exception(phase Phase, class, message string) *Error {
	detail := "exception raised"
	if message != "" {
		detail = message
	}
	return &Error{
		Phase:    phase,
		Kind:     KindException,
		JavaType: class,
		Detail:   detail,
	}
}

// Expired creates an error for a handle used outside its call scope
func Expired(op string) *Error {
	return &Error{
		Phase:  PhaseScope,
		Kind:   KindExpired,
		Detail: fmt.Sprintf("%s: handle used after its native call returned", op),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Load creates a binding discovery error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Collision is a single export symbol claimed by more than one binding
type Collision struct {
	Symbol string   // e.g., "Java_com_example_Hello_hello"
	Funcs  []string // Go functions that map to Symbol
}

// SymbolCollisionError is returned when two or more bindings produce the same
// export symbol. Overloaded native methods collide because the short symbol
// form carries no parameter descriptor.
type SymbolCollisionError struct {
	Collisions []Collision
}

// NewSymbolCollisionError builds the error from a symbol -> functions map.
// Symbols claimed by a single function are ignored; nil is returned when
// nothing collides.
func NewSymbolCollisionError(bySymbol map[string][]string) *SymbolCollisionError {
	result := &SymbolCollisionError{}
	for sym, funcs := range bySymbol {
		if len(funcs) < 2 {
			continue
		}
		sorted := append([]string(nil), funcs...)
		sort.Strings(sorted)
		result.Collisions = append(result.Collisions, Collision{Symbol: sym, Funcs: sorted})
	}
	if len(result.Collisions) == 0 {
		return nil
	}
	sort.Slice(result.Collisions, func(i, j int) bool {
		return result.Collisions[i].Symbol < result.Collisions[j].Symbol
	})
	return result
}

func (e *SymbolCollisionError) Error() string {
	if len(e.Collisions) == 0 {
		return "[generate] collision: no symbols specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d export symbol(s) claimed by more than one function:\n", len(e.Collisions)))

	for _, c := range e.Collisions {
		b.WriteString("\n  ")
		b.WriteString(c.Symbol)
		b.WriteString(":\n")
		for _, fn := range c.Funcs {
			b.WriteString("    - ")
			b.WriteString(fn)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *SymbolCollisionError) Is(target error) bool {
	_, ok := target.(*SymbolCollisionError)
	return ok
}
