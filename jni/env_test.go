package jni

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	jerrors "github.com/wippyai/jnibind/errors"
)

var (
	errNotFound  = &jerrors.Error{Phase: jerrors.PhaseLookup, Kind: jerrors.KindNotFound}
	errException = &jerrors.Error{Kind: jerrors.KindException}
	errExpired   = &jerrors.Error{Phase: jerrors.PhaseScope, Kind: jerrors.KindExpired}
	errMismatch  = &jerrors.Error{Kind: jerrors.KindTypeMismatch}
)

func TestEnv_Class(t *testing.T) {
	_, env := newTestEnv(t, pointClass())

	cls, err := env.Class("geom/Point")
	if err != nil {
		t.Fatalf("Class: %v", err)
	}
	if cls.Name() != "geom/Point" || cls.Ref() == jnibind.Null {
		t.Errorf("Class = %q %v", cls.Name(), cls.Ref())
	}

	tests := []string{"geom/Missing", "geom.Point", ""}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := env.Class(name); !errors.Is(err, errNotFound) {
				t.Errorf("Class(%q) err = %v, want not found", name, err)
			}
		})
	}
}

func TestEnv_Strings(t *testing.T) {
	_, env := newTestEnv(t)

	tests := []string{
		"",
		"hello",
		" - Hello, world!",
		"naïve café",
		"日本語",
		"emoji 🎉 outside the BMP",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			obj, err := env.String(s)
			if err != nil {
				t.Fatalf("String: %v", err)
			}
			got, err := env.GetString(obj)
			if err != nil {
				t.Fatalf("GetString: %v", err)
			}
			if got != s {
				t.Errorf("GetString = %q, want %q", got, s)
			}
		})
	}
}

func TestEnv_StringEncodingErrors(t *testing.T) {
	vm, env := newTestEnv(t)

	t.Run("invalid UTF-8", func(t *testing.T) {
		_, err := env.String("ok\xffbad")
		var je *jerrors.Error
		if !errors.As(err, &je) || je.Kind != jerrors.KindInvalidEncoding {
			t.Fatalf("err = %v, want invalid encoding", err)
		}
		if je.Value != 2 {
			t.Errorf("offset = %v, want 2", je.Value)
		}
	})

	decodeTests := []struct {
		name   string
		units  []uint16
		offset int
	}{
		{"lone high surrogate", []uint16{'a', 0xd83c}, 1},
		{"lone low surrogate", []uint16{0xdf89, 'a'}, 0},
		{"reversed pair", []uint16{'x', 0xdf89, 0xd83c}, 1},
	}
	for _, tt := range decodeTests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := vm.NewString(tt.units)
			if err != nil {
				t.Fatal(err)
			}
			_, err = env.GetString(env.Object(ref))
			var je *jerrors.Error
			if !errors.As(err, &je) || je.Kind != jerrors.KindInvalidEncoding {
				t.Fatalf("err = %v, want invalid encoding", err)
			}
			if je.Value != tt.offset {
				t.Errorf("offset = %v, want %d", je.Value, tt.offset)
			}
		})
	}

	t.Run("null", func(t *testing.T) {
		if _, err := env.GetString(Object{}); jerrors.KindOf(err) != jerrors.KindNilPointer {
			t.Errorf("err = %v", err)
		}
	})
}

func TestEnv_ScopeExpiry(t *testing.T) {
	vm, env := newTestEnv(t, pointClass())

	cls, err := env.Class("geom/Point")
	if err != nil {
		t.Fatal(err)
	}
	obj, err := cls.Create(descriptor.Method(descriptor.Void, descriptor.Int, descriptor.Int), Int(1), Int(2))
	if err != nil {
		t.Fatal(err)
	}
	arr, err := env.NewIntArray(3)
	if err != nil {
		t.Fatal(err)
	}
	objs, err := env.NewObjectArray(1, "")
	if err != nil {
		t.Fatal(err)
	}

	env.Exit()
	if env.Active() {
		t.Fatal("Active after Exit")
	}

	ops := map[string]func() error{
		"Env.Class":              func() error { _, err := env.Class("geom/Point"); return err },
		"Env.String":             func() error { _, err := env.String("x"); return err },
		"Env.Native":             func() error { _, err := env.Native(); return err },
		"Env.Throw":              func() error { return env.Throw("java/lang/Error", "") },
		"Class.CallStaticMethod": func() error { _, err := cls.CallStaticMethod("x", descriptor.Method(descriptor.Void)); return err },
		"Class.GetStaticField":   func() error { _, err := cls.GetStaticField("scale", descriptor.Double); return err },
		"Class.Create":           func() error { _, err := cls.Create(descriptor.Method(descriptor.Void)); return err },
		"Object.CallMethod":      func() error { _, err := obj.CallMethod("sum", descriptor.Method(descriptor.Int)); return err },
		"Object.GetField":        func() error { _, err := obj.GetField("x", descriptor.Int); return err },
		"Object.GetClass":        func() error { _, err := obj.GetClass(); return err },
		"IntArray.Length":        func() error { _, err := arr.Length(); return err },
		"IntArray.Get":           func() error { _, err := arr.Get(0); return err },
		"IntArray.Set":           func() error { return arr.Set(0, 1) },
		"ObjectArray.Get":        func() error { _, err := objs.Get(0); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, errExpired) {
				t.Errorf("err = %v, want expired", err)
			}
		})
	}

	// Objects from a closed scope cannot be smuggled into a new one.
	next := Enter(vm)
	defer next.Exit()
	nextCls, err := next.Class("geom/Point")
	if err != nil {
		t.Fatal(err)
	}
	_, err = nextCls.Create(descriptor.Method(descriptor.Void, descriptor.Int, descriptor.Int), Int(1), ObjectValue(obj))
	if !errors.Is(err, errMismatch) {
		t.Errorf("err = %v, want type mismatch", err)
	}
	err = nextCls.SetStaticField("ORIGIN_NAME", descriptor.JavaString, ObjectValue(obj))
	if !errors.Is(err, errExpired) {
		t.Errorf("stale argument err = %v, want expired", err)
	}

	env.Exit() // idempotent
}

func TestEnv_NilEnv(t *testing.T) {
	var env *Env
	if _, err := env.Class("x"); jerrors.KindOf(err) != jerrors.KindNilPointer {
		t.Errorf("err = %v", err)
	}
	env.Exit()
	var arr IntArray
	if _, err := arr.Length(); jerrors.KindOf(err) != jerrors.KindNilPointer {
		t.Errorf("zero array err = %v", err)
	}
}

func TestEnv_Throw(t *testing.T) {
	vm, env := newTestEnv(t)

	if err := env.Throw("java/lang/IllegalArgumentException", "bad input"); err != nil {
		t.Fatal(err)
	}
	p := vm.ClearPending()
	if p == nil || p.Class != "java/lang/IllegalArgumentException" || p.Message != "bad input" {
		t.Errorf("pending = %v", p)
	}

	if err := env.Throw("no/Such", "x"); !errors.Is(err, errNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestEnv_ThrowError(t *testing.T) {
	vm, env := newTestEnv(t, pointClass())

	tests := []struct {
		name    string
		err     error
		class   string
		message string
	}{
		{
			name:    "plain error",
			err:     fmt.Errorf("disk full"),
			class:   RuntimeException,
			message: "disk full",
		},
		{
			name:    "caught exception is rethrown",
			err:     fmt.Errorf("call: %w", jerrors.Exception(jerrors.PhaseCall, "java/lang/IllegalStateException", "closed")),
			class:   "java/lang/IllegalStateException",
			message: "closed",
		},
		{
			name:    "lookup error",
			err:     jerrors.NotFound("method", "run", "()V"),
			class:   RuntimeException,
			message: `[lookup] not_found: Java type ()V - method "run" not found`,
		},
		{
			name:    "unknown exception class falls back",
			err:     jerrors.Exception(jerrors.PhaseCall, "app/CustomFailure", "boom"),
			class:   RuntimeException,
			message: "app/CustomFailure: boom",
		},
		{
			name:    "class that is not throwable falls back",
			err:     jerrors.Exception(jerrors.PhaseCall, "geom/Point", "odd"),
			class:   RuntimeException,
			message: "geom/Point: odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := env.ThrowError(tt.err); err != nil {
				t.Fatal(err)
			}
			p := vm.ClearPending()
			if p == nil || p.Class != tt.class || p.Message != tt.message {
				t.Errorf("pending = %+v, want %s: %s", p, tt.class, tt.message)
			}
		})
	}

	if err := env.ThrowError(nil); err != nil || vm.Pending() != nil {
		t.Error("ThrowError(nil) should do nothing")
	}

	expired := Enter(vm)
	expired.Exit()
	err := expired.ThrowError(jerrors.Exception(jerrors.PhaseCall, "app/CustomFailure", "boom"))
	if jerrors.KindOf(err) != jerrors.KindExpired {
		t.Errorf("ThrowError on closed scope = %v, want expired", err)
	}
	if vm.Pending() != nil {
		t.Error("closed scope should not raise anything")
	}
}
