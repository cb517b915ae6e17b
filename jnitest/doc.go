// Package jnitest provides an in-memory implementation of jnibind.Native.
//
// A VM holds classes defined in Go, strings, arrays and instances on a
// reference heap, and raises Java-style exceptions, so code written against
// package jni can be exercised without a JVM:
//
//	vm := jnitest.New()
//	vm.MustDefineClass(jnitest.ClassDef{
//	    Name: "CallStaticMethod",
//	    StaticMethods: map[string]jnitest.Method{
//	        "callback(ILjava/lang/String;)V": func(vm *jnitest.VM, _ jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error) {
//	            s, _ := vm.GoString(args[1].Ref())
//	            fmt.Println(args[0].Int(), s)
//	            return jnibind.VoidValue(), nil
//	        },
//	    },
//	})
//
//	env := jni.Enter(vm)
//	defer env.Exit()
//
// Methods and fields are resolved by name plus descriptor exactly as the JVM
// does. Out-of-range array access reports KindOutOfBounds; a Java exception
// reports KindException and is cleared, as cgojni does.
//
// A VM is safe for concurrent use. Methods run without the VM lock held and
// may call back into the VM.
package jnitest
