// Package jnibind is a typed marshalling layer between Go functions exported
// from a cgo shared library and the Java Native Interface.
//
// Native code can call into and be called from the JVM without hand-writing
// descriptor strings, raw jvalue unions, or mangled export names.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jnibind/             Root package with the raw ABI: Ref, JValue and the Native boundary
//	├── descriptor/      Type and method descriptor encoding
//	├── jni/             Env, Class, Object and typed array handles, the Value union
//	├── symbol/          Java_... export symbol naming
//	├── gen/             Export and Java stub code generation
//	├── cgojni/          Native implemented over a real JNIEnv (cgo)
//	├── jnitest/         In-memory Native for tests
//	├── reftable/        Reference table backing the in-memory heap
//	├── errors/          Structured error types for debugging
//	└── cmd/jnigen/      go:generate driver
//
// # Quick Start
//
// Annotate a Go function and run the generator:
//
//	//go:generate go run github.com/wippyai/jnibind/cmd/jnigen generate .
//
//	//jnibind:export CallStaticMethod
//	func caller(env *jni.Env, cls jni.Class) error {
//	    target, err := env.Class("CallStaticMethod")
//	    if err != nil {
//	        return err
//	    }
//	    msg, err := env.String(" - Hello, world!")
//	    if err != nil {
//	        return err
//	    }
//	    _, err = target.CallStaticMethod("callback",
//	        descriptor.Method(descriptor.Void, descriptor.Int, descriptor.JavaString),
//	        jni.Int(0), jni.ObjectValue(msg))
//	    return err
//	}
//
// jnigen writes an exported Java_CallStaticMethod_caller that opens a call
// scope, forwards to caller and throws a RuntimeException if it returns an
// error.
//
// # Handle Lifetime
//
// Every handle borrows the Env of the native call that produced it. Once the
// generated export returns, the scope is closed and any further use of the
// Env or a Class, Object or array derived from it fails with KindExpired.
// Handles never own or release references; the JVM's local reference frame
// does.
//
// # Thread Safety
//
// An Env belongs to the thread the JVM called in on and must not be shared.
// jnitest.VM is safe for concurrent use.
package jnibind
