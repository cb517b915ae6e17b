// Package cgojni binds jnibind.Native to a real JVM through cgo.
//
// Generated exports wrap the JNIEnv pointer the JVM passes to every native
// method:
//
//	env := jni.Enter(cgojni.Wrap(envp))
//	defer env.Exit()
//
// Every JNI call that may raise checks for a pending exception afterwards,
// clears it and returns it as an error: lookups fail with KindNotFound (the
// NoSuchMethodError or NoClassDefFoundError as cause), calls with
// KindException, and ArrayIndexOutOfBoundsException becomes KindOutOfBounds.
// An error returned from a native method is rethrown by Env.ThrowError.
//
// Building requires the JDK headers:
//
//	export CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux"
//	go build -buildmode=c-shared -o libhello.so ./examples/hello
//
// No linker flags are needed; the library is loaded into the JVM process by
// System.loadLibrary and reaches the JVM only through the JNIEnv table.
package cgojni
