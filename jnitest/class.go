package jnitest

import (
	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
)

// Method implements a Java method in Go. this is Null for static methods and
// the new instance for constructors. The returned value must carry the wire
// kind of the declared return type; constructors and void methods return
// jnibind.VoidValue().
//
// A returned error is raised as a Java exception; use Throw to choose the
// class.
type Method func(vm *VM, this jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error)

// Field declares a field and, for static fields, its initial value. A zero
// Value means the default value of Type.
type Field struct {
	Value jnibind.JValue
	Name  string
	Type  descriptor.Type
}

// ClassDef describes a class to define on a VM.
//
// Methods are keyed by name followed by their method descriptor, e.g.
// "callback(ILjava/lang/String;)V"; constructors by descriptor alone. A class
// without constructors accepts "()V".
type ClassDef struct {
	StaticMethods map[string]Method
	Methods       map[string]Method
	Constructors  map[string]Method
	Name          string
	// Super defaults to java/lang/Object.
	Super        string
	StaticFields []Field
	Fields       []Field
}

type class struct {
	super   *class
	def     ClassDef
	statics map[string]jnibind.JValue
	ref     jnibind.Ref
	name    string
}

// memberKey keys a field by name and type descriptor.
func memberKey(name, desc string) string {
	return name + ":" + desc
}

func (c *class) findMethod(static bool, key string) (Method, bool) {
	for k := c; k != nil; k = k.super {
		m := k.def.Methods
		if static {
			m = k.def.StaticMethods
		}
		if fn, ok := m[key]; ok {
			return fn, true
		}
	}
	return nil, false
}

// findStatic returns the class in the chain that declares the static field.
func (c *class) findStatic(key string) (*class, bool) {
	for k := c; k != nil; k = k.super {
		if _, ok := k.statics[key]; ok {
			return k, true
		}
	}
	return nil, false
}

// instanceFields returns the defaults of every field declared along the chain.
func (c *class) instanceFields() map[string]jnibind.JValue {
	fields := make(map[string]jnibind.JValue)
	for k := c; k != nil; k = k.super {
		for _, f := range k.def.Fields {
			key := memberKey(f.Name, f.Type.Descriptor())
			if _, shadowed := fields[key]; !shadowed {
				fields[key] = defaultValue(f)
			}
		}
	}
	return fields
}

func (c *class) isSubclassOf(other *class) bool {
	for k := c; k != nil; k = k.super {
		if k == other {
			return true
		}
	}
	return false
}

func defaultValue(f Field) jnibind.JValue {
	kind := jnibind.WireKind(f.Type)
	if f.Value.Kind == kind {
		return f.Value
	}
	return jnibind.JValue{Kind: kind}
}

// Built-in classes every VM starts with.
var builtins = []ClassDef{
	{Name: "java/lang/Object"},
	{Name: "java/lang/String"},
	{Name: "java/lang/Class"},
	{Name: "java/lang/Throwable"},
	{Name: "java/lang/Exception", Super: "java/lang/Throwable"},
	{Name: "java/lang/Error", Super: "java/lang/Throwable"},
	{Name: "java/lang/OutOfMemoryError", Super: "java/lang/Error"},
	{Name: "java/lang/RuntimeException", Super: "java/lang/Exception"},
	{Name: "java/lang/IllegalArgumentException", Super: "java/lang/RuntimeException"},
	{Name: "java/lang/IllegalStateException", Super: "java/lang/RuntimeException"},
	{Name: "java/lang/NullPointerException", Super: "java/lang/RuntimeException"},
	{Name: "java/lang/ArrayStoreException", Super: "java/lang/RuntimeException"},
	{Name: "java/lang/NegativeArraySizeException", Super: "java/lang/RuntimeException"},
	{Name: "java/lang/IndexOutOfBoundsException", Super: "java/lang/RuntimeException"},
	{Name: "java/lang/ArrayIndexOutOfBoundsException", Super: "java/lang/IndexOutOfBoundsException"},
}
