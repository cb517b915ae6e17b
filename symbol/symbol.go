// Package symbol derives the exported C symbol names the JVM binds native
// methods to.
//
// The short form is used exclusively: Java_ followed by every class path
// segment and the method name, joined with underscores. No escaping is
// applied and no parameter descriptor is appended, so overloaded native
// methods map to the same symbol. Check reports names the JVM would escape.
package symbol

import (
	"strings"

	"github.com/wippyai/jnibind/errors"
)

// Prefix starts every export symbol.
const Prefix = "Java_"

// Export returns the export symbol of method on the class with the given
// path segments, e.g. ["com","example","Hello"], "hello" ->
// "Java_com_example_Hello_hello".
func Export(classPath []string, method string) string {
	var b strings.Builder
	b.WriteString(Prefix)
	for _, seg := range classPath {
		b.WriteString(seg)
		b.WriteByte('_')
	}
	b.WriteString(method)
	return b.String()
}

// ForClass is Export with a dotted or slash-qualified class name.
func ForClass(class, method string) string {
	return Export(SplitClassPath(class), method)
}

// SplitClassPath splits "com.example.Hello" or "com/example/Hello" into its
// segments.
func SplitClassPath(class string) []string {
	if class == "" {
		return nil
	}
	return strings.FieldsFunc(class, func(r rune) bool { return r == '.' || r == '/' })
}

// Parse splits a symbol into class path and method. The split is only
// unambiguous when no segment contains an underscore; Parse assumes that.
func Parse(sym string) (classPath []string, method string, err error) {
	rest, ok := strings.CutPrefix(sym, Prefix)
	if !ok {
		return nil, "", errors.InvalidInput(errors.PhaseParse, "symbol "+sym+" does not start with "+Prefix)
	}
	parts := strings.Split(rest, "_")
	if len(parts) < 2 {
		return nil, "", errors.InvalidInput(errors.PhaseParse, "symbol "+sym+" has no class segment")
	}
	for _, p := range parts {
		if p == "" {
			return nil, "", errors.InvalidInput(errors.PhaseParse, "symbol "+sym+" has an empty segment")
		}
	}
	return parts[:len(parts)-1], parts[len(parts)-1], nil
}

// Issue describes a name the JVM would not resolve with the short form.
type Issue struct {
	Segment string
	Reason  string
}

func (i Issue) String() string {
	return i.Segment + ": " + i.Reason
}

// Check reports segments of the class path or method that the JVM escapes
// when resolving native symbols (_ becomes _1, $ and non-ASCII become _0xxxx).
// Export does not escape, so such a binding would never be linked.
func Check(classPath []string, method string) []Issue {
	var issues []Issue
	if len(classPath) == 0 {
		issues = append(issues, Issue{Segment: "", Reason: "empty class path"})
	}
	for _, seg := range append(append([]string(nil), classPath...), method) {
		switch {
		case seg == "":
			issues = append(issues, Issue{Segment: seg, Reason: "empty segment"})
		case strings.Contains(seg, "_"):
			issues = append(issues, Issue{Segment: seg, Reason: "underscore is escaped as _1 by the JVM"})
		case !isPlainASCII(seg):
			issues = append(issues, Issue{Segment: seg, Reason: "character outside [A-Za-z0-9] is escaped by the JVM"})
		}
	}
	return issues
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
