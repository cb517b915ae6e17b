package descriptor

import "strings"

// Signature is an ordered parameter list and a return type.
// The JVM resolves overloads purely by descriptor, so parameter order must
// match the declared Java method exactly.
type Signature struct {
	Params []Type
	Return Type
}

// NewSignature returns a Signature with the given parameters and return type.
func NewSignature(params []Type, ret Type) Signature {
	return Signature{Params: params, Return: ret}
}

// Method is shorthand for NewSignature with variadic parameters.
func Method(ret Type, params ...Type) Signature {
	return Signature{Params: params, Return: ret}
}

// Descriptor encodes s as "(" params ")" return.
func (s Signature) Descriptor() string {
	var b strings.Builder
	s.encodeParams(&b)
	s.Return.encode(&b)
	return b.String()
}

// ConstructorDescriptor encodes s as a constructor descriptor. Constructors
// always return void, so s.Return is ignored.
func (s Signature) ConstructorDescriptor() string {
	var b strings.Builder
	s.encodeParams(&b)
	b.WriteByte('V')
	return b.String()
}

func (s Signature) encodeParams(b *strings.Builder) {
	b.WriteByte('(')
	for _, p := range s.Params {
		p.encode(b)
	}
	b.WriteByte(')')
}

// String returns a Java-like rendering, e.g. "void (int, java.lang.String)".
func (s Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return s.Return.String() + " (" + strings.Join(parts, ", ") + ")"
}
