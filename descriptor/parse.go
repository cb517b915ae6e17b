package descriptor

import (
	"strings"
	"unicode"

	"github.com/wippyai/jnibind/errors"
)

var primitiveNames = map[string]Type{
	"void":    Void,
	"boolean": Boolean,
	"byte":    Byte,
	"char":    Char,
	"short":   Short,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
}

// ParseJava converts a Java source spelling into a Type.
//
//	int                 -> Int
//	java.lang.String    -> Object("java/lang/String")
//	byte[][]            -> Array(Array(Byte))
//
// Class names may be written dotted or slash-qualified. Nested classes use
// '$' ("java.util.Map$Entry"). void is accepted only as a bare type.
func ParseJava(src string) (Type, error) {
	s := strings.TrimSpace(src)
	dims := 0
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
		dims++
	}
	if s == "" {
		return Type{}, parseFailed(src, "empty type name")
	}

	base, ok := primitiveNames[s]
	switch {
	case ok && base.kind == KindVoid && dims > 0:
		return Type{}, parseFailed(src, "array of void")
	case !ok:
		class := strings.ReplaceAll(s, ".", "/")
		if detail := checkClassName(class); detail != "" {
			return Type{}, parseFailed(src, detail)
		}
		base = Object(class)
	}

	t := base
	for range dims {
		t = Array(t)
	}
	return t, nil
}

// MustParseJava is like ParseJava but panics on error.
func MustParseJava(src string) Type {
	t, err := ParseJava(src)
	if err != nil {
		panic(err)
	}
	return t
}

func parseFailed(src, detail string) *errors.Error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Value(src).
		Detail("type %q: %s", src, detail).
		Build()
}

// checkClassName returns a non-empty reason when class is not a valid
// slash-qualified binary name.
func checkClassName(class string) string {
	for _, seg := range strings.Split(class, "/") {
		if seg == "" {
			return "empty name segment"
		}
		for i, r := range seg {
			if !isIdentRune(r, i == 0) {
				return "invalid character " + string(r)
			}
		}
	}
	return ""
}

func isIdentRune(r rune, first bool) bool {
	switch {
	case r == '_' || r == '$':
		return true
	case unicode.IsLetter(r):
		return true
	case unicode.IsDigit(r):
		return !first
	}
	return false
}
