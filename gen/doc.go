// Package gen discovers native method bindings and generates the code that
// connects them to the JVM.
//
// Bindings come from Go source, where a directive above a function names
// the Java class it implements a native method of:
//
//	//jnibind:export com.example.Hello method=caller
//	func caller(env *jni.Env, class jni.Class) error
//
// or from a YAML manifest validated against an embedded JSON Schema. Both
// produce the same []*Binding; a Context orders and validates them and the
// registered generators render output:
//
//	exports  cgo file with one //export Java_... function per binding
//	java     Java sources declaring the matching native methods
//
// Overloaded native methods share an export symbol. Validate reports them
// as a *errors.SymbolCollisionError instead of generating a file that fails
// to link.
package gen
