package unsupported

import "github.com/wippyai/jnibind/jni"

//jnibind:export com.example.Bad
func bad(env *jni.Env, class jni.Class, ch chan int) {}
