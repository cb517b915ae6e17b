package jnitest

import (
	"errors"
	"sync"
	"testing"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	jerrors "github.com/wippyai/jnibind/errors"
)

func counterClass() ClassDef {
	return ClassDef{
		Name: "test/Counter",
		StaticFields: []Field{
			{Name: "instances", Type: descriptor.Int},
			{Name: "label", Type: descriptor.JavaString},
		},
		Fields: []Field{
			{Name: "count", Type: descriptor.Long},
		},
		Constructors: map[string]Method{
			"(J)V": func(vm *VM, this jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error) {
				return jnibind.VoidValue(), vm.SetField(this, "count", "J", args[0])
			},
		},
		StaticMethods: map[string]Method{
			"add(II)I": func(_ *VM, _ jnibind.Ref, args []jnibind.JValue) (jnibind.JValue, error) {
				return jnibind.IntValue(args[0].Int() + args[1].Int()), nil
			},
			"fail()V": func(*VM, jnibind.Ref, []jnibind.JValue) (jnibind.JValue, error) {
				return jnibind.JValue{}, Throw("java/lang/IllegalStateException", "boom")
			},
			"plain()V": func(*VM, jnibind.Ref, []jnibind.JValue) (jnibind.JValue, error) {
				return jnibind.JValue{}, errors.New("plain failure")
			},
			"wrong()I": func(*VM, jnibind.Ref, []jnibind.JValue) (jnibind.JValue, error) {
				return jnibind.LongValue(1), nil
			},
		},
		Methods: map[string]Method{
			"get()J": func(vm *VM, this jnibind.Ref, _ []jnibind.JValue) (jnibind.JValue, error) {
				return vm.GetField(this, "count", "J", descriptor.KindLong)
			},
		},
	}
}

func TestVM_FindClass(t *testing.T) {
	vm := New()
	ref := vm.MustDefineClass(counterClass())

	got, err := vm.FindClass("test/Counter")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	if got != ref {
		t.Errorf("FindClass = %v, want %v", got, ref)
	}

	for _, name := range []string{"test.Counter", "test/Missing", ""} {
		t.Run(name, func(t *testing.T) {
			_, err := vm.FindClass(name)
			if !errors.Is(err, &jerrors.Error{Phase: jerrors.PhaseLookup, Kind: jerrors.KindNotFound}) {
				t.Errorf("FindClass(%q) = %v, want not found", name, err)
			}
		})
	}

	if _, err := vm.FindClass("[I"); err != nil {
		t.Errorf("array class lookup failed: %v", err)
	}
}

func TestVM_DefineClass(t *testing.T) {
	vm := New()
	vm.MustDefineClass(counterClass())

	if _, err := vm.DefineClass(counterClass()); err == nil {
		t.Error("redefinition should fail")
	}
	if _, err := vm.DefineClass(ClassDef{Name: "a/B", Super: "a/Missing"}); err == nil {
		t.Error("unknown superclass should fail")
	}
	if _, err := vm.DefineClass(ClassDef{}); err == nil {
		t.Error("empty name should fail")
	}
}

func TestVM_StaticCalls(t *testing.T) {
	vm := New()
	cls := vm.MustDefineClass(counterClass())

	t.Run("result", func(t *testing.T) {
		v, err := vm.CallStaticMethod(cls, "add", "(II)I", descriptor.KindInt,
			[]jnibind.JValue{jnibind.IntValue(2), jnibind.IntValue(40)})
		if err != nil {
			t.Fatal(err)
		}
		if v.Int() != 42 {
			t.Errorf("add = %d, want 42", v.Int())
		}
	})

	t.Run("descriptor must match", func(t *testing.T) {
		_, err := vm.CallStaticMethod(cls, "add", "(JJ)J", descriptor.KindLong, nil)
		if jerrors.KindOf(err) != jerrors.KindNotFound {
			t.Errorf("err = %v, want not found", err)
		}
	})

	t.Run("exception", func(t *testing.T) {
		_, err := vm.CallStaticMethod(cls, "fail", "()V", descriptor.KindVoid, nil)
		var je *jerrors.Error
		if !errors.As(err, &je) || je.Kind != jerrors.KindException {
			t.Fatalf("err = %v, want exception", err)
		}
		if je.JavaType != "java/lang/IllegalStateException" || je.Detail != "boom" {
			t.Errorf("exception = %s %q", je.JavaType, je.Detail)
		}
	})

	t.Run("go error becomes RuntimeException", func(t *testing.T) {
		_, err := vm.CallStaticMethod(cls, "plain", "()V", descriptor.KindVoid, nil)
		var je *jerrors.Error
		if !errors.As(err, &je) || je.JavaType != "java/lang/RuntimeException" {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("result kind checked", func(t *testing.T) {
		_, err := vm.CallStaticMethod(cls, "wrong", "()I", descriptor.KindInt, nil)
		if jerrors.KindOf(err) != jerrors.KindTypeMismatch {
			t.Errorf("err = %v, want type mismatch", err)
		}
	})
}

func TestVM_Objects(t *testing.T) {
	vm := New()
	cls := vm.MustDefineClass(counterClass())

	obj, err := vm.NewObject(cls, "(J)V", []jnibind.JValue{jnibind.LongValue(7)})
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	v, err := vm.CallMethod(obj, "get", "()J", descriptor.KindLong, nil)
	if err != nil {
		t.Fatalf("CallMethod: %v", err)
	}
	if v.Long() != 7 {
		t.Errorf("get = %d, want 7", v.Long())
	}

	got, err := vm.GetObjectClass(obj)
	if err != nil || got != cls {
		t.Errorf("GetObjectClass = %v, %v", got, err)
	}

	if _, err := vm.NewObject(cls, "()V", nil); jerrors.KindOf(err) != jerrors.KindNotFound {
		t.Errorf("missing constructor err = %v", err)
	}
	if err := vm.SetField(obj, "count", "J", jnibind.IntValue(1)); jerrors.KindOf(err) != jerrors.KindTypeMismatch {
		t.Errorf("field kind err = %v", err)
	}
	if _, err := vm.GetField(obj, "missing", "I", descriptor.KindInt); jerrors.KindOf(err) != jerrors.KindNotFound {
		t.Errorf("missing field err = %v", err)
	}
}

func TestVM_StaticFields(t *testing.T) {
	vm := New()
	cls := vm.MustDefineClass(counterClass())

	v, err := vm.GetStaticField(cls, "instances", "I", descriptor.KindInt)
	if err != nil {
		t.Fatal(err)
	}
	if v.Int() != 0 {
		t.Errorf("default = %d, want 0", v.Int())
	}
	if err := vm.SetStaticField(cls, "instances", "I", jnibind.IntValue(3)); err != nil {
		t.Fatal(err)
	}
	v, _ = vm.GetStaticField(cls, "instances", "I", descriptor.KindInt)
	if v.Int() != 3 {
		t.Errorf("instances = %d, want 3", v.Int())
	}

	label, err := vm.GetStaticField(cls, "label", "Ljava/lang/String;", descriptor.KindObject)
	if err != nil {
		t.Fatal(err)
	}
	if label.Ref() != jnibind.Null {
		t.Error("reference field should default to null")
	}
	if _, err := vm.GetStaticField(cls, "instances", "J", descriptor.KindLong); jerrors.KindOf(err) != jerrors.KindNotFound {
		t.Errorf("wrong descriptor err = %v", err)
	}
}

func TestVM_Strings(t *testing.T) {
	vm := New()
	ref, err := vm.NewGoString("héllo, 世界 🎉")
	if err != nil {
		t.Fatal(err)
	}
	s, err := vm.GoString(ref)
	if err != nil {
		t.Fatal(err)
	}
	if s != "héllo, 世界 🎉" {
		t.Errorf("GoString = %q", s)
	}
	cls, _ := vm.GetObjectClass(ref)
	strCls, _ := vm.FindClass("java/lang/String")
	if cls != strCls {
		t.Error("string class mismatch")
	}
	if _, err := vm.GetStringChars(strCls); jerrors.KindOf(err) != jerrors.KindTypeMismatch {
		t.Errorf("non-string err = %v", err)
	}
}

func TestVM_Arrays(t *testing.T) {
	vm := New()

	t.Run("region", func(t *testing.T) {
		arr, err := vm.NewArray(descriptor.KindShort, 4)
		if err != nil {
			t.Fatal(err)
		}
		if n, _ := vm.GetArrayLength(arr); n != 4 {
			t.Errorf("length = %d, want 4", n)
		}
		if err := vm.SetArrayRegion(arr, descriptor.KindShort, 1, []byte{1, 2, 3, 4}); err != nil {
			t.Fatal(err)
		}
		buf := make([]byte, 8)
		if err := vm.GetArrayRegion(arr, descriptor.KindShort, 0, buf); err != nil {
			t.Fatal(err)
		}
		want := []byte{0, 0, 1, 2, 3, 4, 0, 0}
		for i := range want {
			if buf[i] != want[i] {
				t.Fatalf("buf = %v, want %v", buf, want)
			}
		}
	})

	t.Run("bounds", func(t *testing.T) {
		arr, _ := vm.NewArray(descriptor.KindInt, 2)
		for _, start := range []int32{-1, 2, 1} {
			err := vm.GetArrayRegion(arr, descriptor.KindInt, start, make([]byte, 8))
			if !errors.Is(err, &jerrors.Error{Phase: jerrors.PhaseArray, Kind: jerrors.KindOutOfBounds}) {
				t.Errorf("start %d: err = %v, want out of bounds", start, err)
			}
		}
	})

	t.Run("kind mismatch", func(t *testing.T) {
		arr, _ := vm.NewArray(descriptor.KindInt, 2)
		if err := vm.GetArrayRegion(arr, descriptor.KindLong, 0, make([]byte, 8)); jerrors.KindOf(err) != jerrors.KindTypeMismatch {
			t.Errorf("err = %v, want type mismatch", err)
		}
	})

	t.Run("negative length", func(t *testing.T) {
		_, err := vm.NewArray(descriptor.KindInt, -1)
		var je *jerrors.Error
		if !errors.As(err, &je) || je.JavaType != "java/lang/NegativeArraySizeException" {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		small := New(WithMaxArrayLength(8))
		if _, err := small.NewArray(descriptor.KindByte, 9); jerrors.KindOf(err) != jerrors.KindAllocation {
			t.Errorf("err = %v, want allocation failure", err)
		}
	})

	t.Run("object elements", func(t *testing.T) {
		strCls, _ := vm.FindClass("java/lang/String")
		arr, err := vm.NewObjectArray(2, strCls, jnibind.Null)
		if err != nil {
			t.Fatal(err)
		}
		s, _ := vm.NewGoString("x")
		if err := vm.SetObjectArrayElement(arr, 1, s); err != nil {
			t.Fatal(err)
		}
		got, _ := vm.GetObjectArrayElement(arr, 1)
		if got != s {
			t.Errorf("element = %v, want %v", got, s)
		}
		if err := vm.SetObjectArrayElement(arr, 0, strCls); jerrors.KindOf(err) != jerrors.KindException {
			t.Errorf("store of Class into String[] err = %v", err)
		}
		if _, err := vm.GetObjectArrayElement(arr, 2); jerrors.KindOf(err) != jerrors.KindOutOfBounds {
			t.Errorf("err = %v, want out of bounds", err)
		}
		cls, _ := vm.GetObjectClass(arr)
		named, _ := vm.FindClass("[Ljava/lang/String;")
		if cls != named {
			t.Error("object array class should be [Ljava/lang/String;")
		}
	})
}

func TestVM_Throw(t *testing.T) {
	vm := New()
	if err := vm.Throw("java/lang/IllegalArgumentException", "bad"); err != nil {
		t.Fatal(err)
	}
	p := vm.Pending()
	if p == nil || p.String() != "java/lang/IllegalArgumentException: bad" {
		t.Errorf("Pending = %v", p)
	}
	if vm.ClearPending() == nil || vm.Pending() != nil {
		t.Error("ClearPending did not clear")
	}
	if err := vm.Throw("java/lang/String", "x"); err == nil {
		t.Error("throwing a non-Throwable should fail")
	}
	if err := vm.Throw("no/Such", "x"); jerrors.KindOf(err) != jerrors.KindNotFound {
		t.Errorf("err = %v", err)
	}
}

func TestVM_Release(t *testing.T) {
	vm := New()
	before := vm.Live()
	ref, _ := vm.NewGoString("tmp")
	if vm.Live() != before+1 {
		t.Errorf("Live = %d, want %d", vm.Live(), before+1)
	}
	if err := vm.Release(ref); err != nil {
		t.Fatal(err)
	}
	if _, err := vm.GoString(ref); err == nil {
		t.Error("released reference should be invalid")
	}
	if err := vm.Release(ref); err == nil {
		t.Error("double release should fail")
	}
	cls, _ := vm.FindClass("java/lang/Object")
	if err := vm.Release(cls); err == nil {
		t.Error("class references are pinned")
	}
	if _, err := vm.GoString(jnibind.Null); jerrors.KindOf(err) != jerrors.KindNilPointer {
		t.Errorf("null err = %v", err)
	}
}

func TestVM_Concurrent(t *testing.T) {
	vm := New()
	cls := vm.MustDefineClass(counterClass())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int32) {
			defer wg.Done()
			for j := range int32(50) {
				v, err := vm.CallStaticMethod(cls, "add", "(II)I", descriptor.KindInt,
					[]jnibind.JValue{jnibind.IntValue(i), jnibind.IntValue(j)})
				if err != nil || v.Int() != i+j {
					t.Errorf("add(%d, %d) = %d, %v", i, j, v.Int(), err)
					return
				}
				s, err := vm.NewGoString("s")
				if err != nil {
					t.Error(err)
					return
				}
				_ = vm.Release(s)
			}
		}(int32(i))
	}
	wg.Wait()
}
