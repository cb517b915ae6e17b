// Package descriptor encodes JNI types and method signatures into the
// descriptor strings the JVM uses to resolve fields and methods.
//
// Encoding is pure and total:
//
//	descriptor.Array(descriptor.Array(descriptor.JavaString)).Descriptor()
//	    // "[[Ljava/lang/String;"
//	descriptor.Method(descriptor.Char, descriptor.Array(descriptor.JavaString), descriptor.Array(descriptor.Char)).Descriptor()
//	    // "([Ljava/lang/String;[C)C"
//
// Object class names must already be slash-qualified. ParseJava is the only
// entry point that accepts the dotted source form.
//
// There is no decoder; descriptors are write-only.
package descriptor
