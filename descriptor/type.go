package descriptor

import "strings"

// Type is a JNI type: a primitive, void, an object of a named class, or an
// array of another Type. The zero Type is Void.
//
// Types are immutable values. Two Types are equal iff their descriptors are
// equal; use Equal rather than ==, since array Types hold a pointer to their
// element.
type Type struct {
	elem  *Type
	class string
	kind  Kind
}

// Primitive and void types.
var (
	Void    = Type{kind: KindVoid}
	Boolean = Type{kind: KindBoolean}
	Byte    = Type{kind: KindByte}
	Char    = Type{kind: KindChar}
	Short   = Type{kind: KindShort}
	Int     = Type{kind: KindInt}
	Long    = Type{kind: KindLong}
	Float   = Type{kind: KindFloat}
	Double  = Type{kind: KindDouble}
)

// Common reference types.
var (
	JavaObject = Object("java/lang/Object")
	JavaString = Object("java/lang/String")
	JavaClass  = Object("java/lang/Class")
)

// Object returns the type of instances of class.
// class must be slash-qualified ("java/lang/String"); no translation from the
// dotted source form is performed.
func Object(class string) Type {
	return Type{kind: KindObject, class: class}
}

// Array returns the type of arrays of elem.
func Array(elem Type) Type {
	e := elem
	return Type{kind: KindArray, elem: &e}
}

// Kind returns the variant tag.
func (t Type) Kind() Kind {
	return t.kind
}

// ClassName returns the slash-qualified class of an Object type, and "" for
// every other kind.
func (t Type) ClassName() string {
	if t.kind != KindObject {
		return ""
	}
	return t.class
}

// Elem returns the element type of an Array type.
func (t Type) Elem() (Type, bool) {
	if t.kind != KindArray || t.elem == nil {
		return Type{}, false
	}
	return *t.elem, true
}

// Dimensions returns the array nesting depth of t; 0 for non-arrays.
func (t Type) Dimensions() int {
	n := 0
	for t.kind == KindArray && t.elem != nil {
		n++
		t = *t.elem
	}
	return n
}

// IsPrimitive reports whether t is one of the eight primitive types.
func (t Type) IsPrimitive() bool {
	return t.kind.IsPrimitive()
}

// IsReference reports whether values of t are object references.
func (t Type) IsReference() bool {
	return t.kind.IsReference()
}

// Descriptor encodes t in the JNI type descriptor grammar.
func (t Type) Descriptor() string {
	var b strings.Builder
	t.encode(&b)
	return b.String()
}

func (t Type) encode(b *strings.Builder) {
	switch t.kind {
	case KindObject:
		b.WriteByte('L')
		b.WriteString(t.class)
		b.WriteByte(';')
	case KindArray:
		b.WriteByte('[')
		if t.elem != nil {
			t.elem.encode(b)
		}
	default:
		b.WriteByte(t.kind.Letter())
	}
}

// Equal reports whether t and o have the same descriptor.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindObject:
		return t.class == o.class
	case KindArray:
		te, _ := t.Elem()
		oe, _ := o.Elem()
		return te.Equal(oe)
	default:
		return true
	}
}

// String returns the Java source spelling of t, e.g. "java.lang.String[][]".
func (t Type) String() string {
	switch t.kind {
	case KindObject:
		return strings.ReplaceAll(t.class, "/", ".")
	case KindArray:
		elem, _ := t.Elem()
		return elem.String() + "[]"
	default:
		return t.kind.String()
	}
}
