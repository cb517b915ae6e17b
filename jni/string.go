package jni

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/jnibind/errors"
)

// String creates a java.lang.String holding s. s must be valid UTF-8.
func (e *Env) String(s string) (Object, error) {
	n, err := e.check("Env.String")
	if err != nil {
		return Object{}, err
	}
	if !utf8.ValidString(s) {
		return Object{}, errors.InvalidEncoding(errors.PhaseString, "invalid UTF-8", invalidUTF8Offset(s))
	}
	ref, err := n.NewString(utf16.Encode([]rune(s)))
	if err != nil {
		return Object{}, err
	}
	return Object{env: e, ref: ref}, nil
}

// GetString copies the contents of a java.lang.String. A string holding an
// unpaired surrogate fails with KindInvalidEncoding rather than being
// replaced.
func (e *Env) GetString(str Object) (string, error) {
	n, err := e.check("Env.GetString")
	if err != nil {
		return "", err
	}
	if str.IsNull() {
		return "", errors.NilPointer(errors.PhaseString, nil, "java/lang/String")
	}
	units, err := n.GetStringChars(str.ref)
	if err != nil {
		return "", err
	}
	return decodeUTF16(units)
}

func decodeUTF16(units []uint16) (string, error) {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		if !utf16.IsSurrogate(rune(u)) {
			b.WriteRune(rune(u))
			continue
		}
		if i+1 < len(units) {
			if r := utf16.DecodeRune(rune(u), rune(units[i+1])); r != utf8.RuneError {
				b.WriteRune(r)
				i++
				continue
			}
		}
		return "", errors.InvalidEncoding(errors.PhaseString, fmt.Sprintf("unpaired surrogate %#04x", u), i)
	}
	return b.String(), nil
}

func invalidUTF8Offset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return len(s)
}
