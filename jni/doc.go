// Package jni provides typed handles over a JNI environment.
//
// An Env is opened per native method invocation with Enter and closed with
// Exit. Class, Object and the typed array handles borrow it:
//
//	env := jni.Enter(native)
//	defer env.Exit()
//
//	cls, err := env.Class("java/lang/Integer")
//	if err != nil {
//	    return err
//	}
//	v, err := cls.CallStaticMethod("valueOf",
//	    descriptor.Method(descriptor.Object("java/lang/Integer"), descriptor.Int),
//	    jni.Int(42))
//
// Descriptors are built from the Signature passed to each call and every
// argument is checked against its parameter before the call crosses the
// boundary: an int passed where a long is declared fails with
// KindTypeMismatch instead of reaching the JVM.
//
// # Values
//
// Value is a closed tagged union mirroring jvalue. ToWire and FromWire convert
// to and from jnibind.JValue without loss for every primitive. Char is a rune
// on the Go side and a UTF-16 code unit on the wire; runes above 0xFFFF are
// not representable and their conversion is undefined.
//
// # Arrays
//
// BooleanArray through DoubleArray copy one element per Get or Set through a
// region copy, and Region/SetRegion copy a contiguous run. ObjectArray reads
// and writes single references. All of them implement Array[E].
//
// # Lifetime
//
// Handles are not retained past Exit. Any use after that fails with
// KindExpired; there is nothing to release.
package jni
