package hello

import (
	"errors"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/jni"
)

//jnibind:export com.example.Hello
func caller(env *jni.Env, class jni.Class) error {
	msg, err := env.String(" - Hello, world!")
	if err != nil {
		return err
	}
	_, err = class.CallStaticMethod("callback",
		descriptor.Method(descriptor.Void, descriptor.Int, descriptor.JavaString),
		jni.Int(0), jni.ObjectValue(msg))
	return err
}

//jnibind:export com.example.Hello method=greet
func Greet(env *jni.Env, class jni.Class, name string) (string, error) {
	if name == "" {
		return "", errors.New("empty name")
	}
	return "Hello, " + name, nil
}

//jnibind:export com.example.Counter
func add(env *jni.Env, this jni.Object, delta int32, scale float64) int64 {
	return int64(float64(delta) * scale)
}

//jnibind:export com.example.Counter
func isEmpty(env *jni.Env, this jni.Object, values jni.IntArray, c uint16, raw jnibind.Ref) bool {
	n, _ := values.Length()
	return n == 0 && c == 0 && raw == jnibind.Null
}

//jnibind:export com.example.Counter
func reset(env *jni.Env, this jni.Object) {}

// not exported: no directive
func helper() {}
