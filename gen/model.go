package gen

import (
	"fmt"
	"strings"

	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/symbol"
)

// Conv describes how a raw ABI value becomes the Go value a user function
// receives, and back.
type Conv uint8

const (
	ConvDirect Conv = iota // primitive, passed unchanged
	ConvBool               // jboolean <-> bool
	ConvString             // jstring <-> string
	ConvObject             // jobject <-> jni.Object
	ConvArray              // jarray <-> jni.<Kind>Array
	ConvRef                // jobject <-> jnibind.Ref
)

// GoType is one entry of the Go <-> JNI parameter mapping.
type GoType struct {
	Name string          // spelling in user code, e.g. "int32", "jni.IntArray"
	Wire string          // spelling in the export signature, e.g. "int32", "uintptr"
	Java descriptor.Type // default Java type
	Conv Conv
}

// wrap returns the expression turning raw into a user-facing value.
func (g GoType) wrap(raw string) string {
	switch g.Conv {
	case ConvBool:
		return raw + " != 0"
	case ConvObject:
		return "env.Object(jnibind.Ref(" + raw + "))"
	case ConvArray:
		return g.Name + "From(env, jnibind.Ref(" + raw + "))"
	case ConvRef:
		return "jnibind.Ref(" + raw + ")"
	default:
		return raw
	}
}

// unwrap returns the expression turning a user-facing value into its wire
// form. ConvBool and ConvString need statements and are handled by the
// emitter.
func (g GoType) unwrap(v string) string {
	switch g.Conv {
	case ConvObject, ConvArray:
		return "uintptr(" + v + ".Ref())"
	case ConvRef:
		return "uintptr(" + v + ")"
	default:
		return v
	}
}

var goTypes = []GoType{
	{Name: "bool", Wire: "uint8", Java: descriptor.Boolean, Conv: ConvBool},
	{Name: "int8", Wire: "int8", Java: descriptor.Byte},
	{Name: "uint16", Wire: "uint16", Java: descriptor.Char},
	{Name: "int16", Wire: "int16", Java: descriptor.Short},
	{Name: "int32", Wire: "int32", Java: descriptor.Int},
	{Name: "int64", Wire: "int64", Java: descriptor.Long},
	{Name: "float32", Wire: "float32", Java: descriptor.Float},
	{Name: "float64", Wire: "float64", Java: descriptor.Double},
	{Name: "string", Wire: "uintptr", Java: descriptor.JavaString, Conv: ConvString},
	{Name: "jni.Object", Wire: "uintptr", Java: descriptor.JavaObject, Conv: ConvObject},
	{Name: "jni.BooleanArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Boolean), Conv: ConvArray},
	{Name: "jni.ByteArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Byte), Conv: ConvArray},
	{Name: "jni.CharArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Char), Conv: ConvArray},
	{Name: "jni.ShortArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Short), Conv: ConvArray},
	{Name: "jni.IntArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Int), Conv: ConvArray},
	{Name: "jni.LongArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Long), Conv: ConvArray},
	{Name: "jni.FloatArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Float), Conv: ConvArray},
	{Name: "jni.DoubleArray", Wire: "uintptr", Java: descriptor.Array(descriptor.Double), Conv: ConvArray},
	{Name: "jni.ObjectArray", Wire: "uintptr", Java: descriptor.Array(descriptor.JavaObject), Conv: ConvArray},
	{Name: "jnibind.Ref", Wire: "uintptr", Java: descriptor.JavaObject, Conv: ConvRef},
}

// LookupGoType returns the mapping for a Go type spelled as in user code.
func LookupGoType(name string) (GoType, bool) {
	for _, g := range goTypes {
		if g.Name == name {
			return g, true
		}
	}
	return GoType{}, false
}

// GoTypeFor picks the Go type used for a Java type declared in a manifest.
// Reference types other than String and primitive arrays are surfaced as
// jni.Object or jni.ObjectArray.
func GoTypeFor(t descriptor.Type) (GoType, error) {
	if t.Kind() == descriptor.KindVoid {
		return GoType{}, fmt.Errorf("void is not a parameter type")
	}
	for _, g := range goTypes {
		if g.Conv != ConvRef && g.Java.Equal(t) {
			return g, nil
		}
	}
	if t.Kind() == descriptor.KindArray {
		g, _ := LookupGoType("jni.ObjectArray")
		g.Java = t
		return g, nil
	}
	g, _ := LookupGoType("jni.Object")
	g.Java = t
	return g, nil
}

// Param is one Java-visible parameter or the result of a binding.
type Param struct {
	Name string
	Java descriptor.Type
	Go   GoType
}

// Binding ties one Go function to one Java native method.
type Binding struct {
	Class  string // dotted, e.g. "com.example.Hello"
	Method string
	Func   string
	Pos    string // source position or manifest entry, for diagnostics
	Params []Param
	Result *Param // nil for void
	Static bool
	Throws bool // the Go function returns a trailing error
}

// ClassPath returns the class name split into package segments.
func (b *Binding) ClassPath() []string {
	return symbol.SplitClassPath(b.Class)
}

// Symbol returns the export symbol the JVM resolves for this binding.
func (b *Binding) Symbol() string {
	return symbol.Export(b.ClassPath(), b.Method)
}

// Signature returns the Java method signature.
func (b *Binding) Signature() descriptor.Signature {
	params := make([]descriptor.Type, len(b.Params))
	for i, p := range b.Params {
		params[i] = p.Java
	}
	ret := descriptor.Void
	if b.Result != nil {
		ret = b.Result.Java
	}
	return descriptor.NewSignature(params, ret)
}

// Descriptor returns the JNI method descriptor, e.g. "(ILjava/lang/String;)V".
func (b *Binding) Descriptor() string {
	return b.Signature().Descriptor()
}

// SimpleName returns the class name without its package.
func (b *Binding) SimpleName() string {
	path := b.ClassPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// Package returns the dotted Java package of the class, "" for the default package.
func (b *Binding) Package() string {
	path := b.ClassPath()
	if len(path) < 2 {
		return ""
	}
	return strings.Join(path[:len(path)-1], ".")
}
