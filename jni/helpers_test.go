package jni

import (
	"testing"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/jnitest"
)

// call records one invocation of a method defined on the test VM.
type call struct {
	method string
	args   []jnibind.JValue
}

type recorder struct {
	calls []call
}

func (r *recorder) method(name string, ret jnibind.JValue) jnitest.Method {
	return func(_ *jnitest.VM, _ jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error) {
		r.calls = append(r.calls, call{method: name, args: append([]jnibind.JValue(nil), args...)})
		return ret, nil
	}
}

func newTestEnv(t *testing.T, defs ...jnitest.ClassDef) (*jnitest.VM, *Env) {
	t.Helper()
	vm := jnitest.New()
	for _, def := range defs {
		if _, err := vm.DefineClass(def); err != nil {
			t.Fatalf("DefineClass(%s): %v", def.Name, err)
		}
	}
	env := Enter(vm)
	t.Cleanup(env.Exit)
	return vm, env
}

// pointClass is a small class with fields, a constructor and methods.
func pointClass() jnitest.ClassDef {
	return jnitest.ClassDef{
		Name: "geom/Point",
		Fields: []jnitest.Field{
			{Name: "x", Type: descriptor.Int},
			{Name: "y", Type: descriptor.Int},
			{Name: "name", Type: descriptor.JavaString},
		},
		StaticFields: []jnitest.Field{
			{Name: "ORIGIN_NAME", Type: descriptor.JavaString},
			{Name: "scale", Type: descriptor.Double, Value: jnibind.DoubleValue(1.5)},
		},
		Constructors: map[string]jnitest.Method{
			"(II)V": func(vm *jnitest.VM, this jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error) {
				if err := vm.SetField(this, "x", "I", args[0]); err != nil {
					return jnibind.JValue{}, err
				}
				return jnibind.VoidValue(), vm.SetField(this, "y", "I", args[1])
			},
		},
		Methods: map[string]jnitest.Method{
			"sum()I": func(vm *jnitest.VM, this jnibind.Ref, _ []jnibind.JValue) (jnibind.JValue, error) {
				x, err := vm.GetField(this, "x", "I", descriptor.KindInt)
				if err != nil {
					return jnibind.JValue{}, err
				}
				y, err := vm.GetField(this, "y", "I", descriptor.KindInt)
				if err != nil {
					return jnibind.JValue{}, err
				}
				return jnibind.IntValue(x.Int() + y.Int()), nil
			},
			"describe(Ljava/lang/String;)Ljava/lang/String;": func(vm *jnitest.VM, _ jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error) {
				prefix, err := vm.GoString(args[0].Ref())
				if err != nil {
					return jnibind.JValue{}, err
				}
				ref, err := vm.NewGoString(prefix + "point")
				return jnibind.RefValue(ref), err
			},
		},
	}
}
