package cgojni

// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

const arrayIndexOutOfBounds = "java/lang/ArrayIndexOutOfBoundsException"

// Native implements jnibind.Native over a JNIEnv pointer received by an
// exported native method. It is valid only on the thread and for the
// duration of that native call.
type Native struct {
	env *C.JNIEnv
}

var _ jnibind.Native = (*Native)(nil)

// Wrap adopts the JNIEnv pointer passed as the first argument of a native
// method.
func Wrap(env uintptr) *Native {
	return &Native{env: (*C.JNIEnv)(unsafe.Pointer(env))}
}

func (n *Native) lookupFailed(what, name, sig string) error {
	e := errors.NotFound(what, name, sig)
	if ex := n.pending(errors.PhaseLookup); ex != nil {
		e.Cause = ex
	}
	return e
}

// raised returns the pending exception of phase as an error, or nil.
func (n *Native) raised(phase errors.Phase) error {
	if ex := n.pending(phase); ex != nil {
		return ex
	}
	return nil
}

func (n *Native) FindClass(name string) (jnibind.Ref, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cls := C.findClass(n.env, cname)
	if cls == nil {
		return jnibind.Null, n.lookupFailed("class", name, "")
	}
	return ref(cls), nil
}

func (n *Native) GetObjectClass(obj jnibind.Ref) (jnibind.Ref, error) {
	if obj == jnibind.Null {
		return jnibind.Null, errors.NilPointer(errors.PhaseCall, []string{"GetObjectClass"}, "jnibind.Ref")
	}
	return ref(C.getObjectClass(n.env, jobj(obj))), nil
}

func (n *Native) NewString(units []uint16) (jnibind.Ref, error) {
	var p *C.jchar
	if len(units) > 0 {
		p = (*C.jchar)(unsafe.Pointer(&units[0]))
	}
	s := C.newString(n.env, p, C.jsize(len(units)))
	if s == nil {
		cause := n.raised(errors.PhaseString)
		return jnibind.Null, errors.AllocationFailed(errors.PhaseString, "java.lang.String", len(units), cause)
	}
	return ref(s), nil
}

func (n *Native) GetStringChars(s jnibind.Ref) ([]uint16, error) {
	if s == jnibind.Null {
		return nil, errors.NilPointer(errors.PhaseString, []string{"GetStringChars"}, "jnibind.Ref")
	}
	units := n.chars(jobj(s))
	return units, n.raised(errors.PhaseString)
}

func (n *Native) methodID(class jnibind.Ref, name, sig string, static bool) (C.jmethodID, error) {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	m := C.getMethodID(n.env, jobj(class), cname, csig, cbool(static))
	if m == nil {
		what := "method"
		if static {
			what = "static method"
		}
		if name == "<init>" {
			what = "constructor"
		}
		return nil, n.lookupFailed(what, name, sig)
	}
	return m, nil
}

func (n *Native) fieldID(class jnibind.Ref, name, sig string, static bool) (C.jfieldID, error) {
	cname, csig := C.CString(name), C.CString(sig)
	defer C.free(unsafe.Pointer(cname))
	defer C.free(unsafe.Pointer(csig))
	f := C.getFieldID(n.env, jobj(class), cname, csig, cbool(static))
	if f == nil {
		what := "field"
		if static {
			what = "static field"
		}
		return nil, n.lookupFailed(what, name, sig)
	}
	return f, nil
}

func (n *Native) CallStaticMethod(class jnibind.Ref, name, sig string, ret descriptor.Kind, args []jnibind.JValue) (jnibind.JValue, error) {
	m, err := n.methodID(class, name, sig, true)
	if err != nil {
		return jnibind.JValue{}, err
	}
	r := C.callStatic(n.env, jobj(class), m, callKind(ret), cargs(args))
	if err := n.raised(errors.PhaseCall); err != nil {
		return jnibind.JValue{}, err
	}
	return fromC(r, ret), nil
}

func (n *Native) CallMethod(obj jnibind.Ref, name, sig string, ret descriptor.Kind, args []jnibind.JValue) (jnibind.JValue, error) {
	if obj == jnibind.Null {
		return jnibind.JValue{}, errors.NilPointer(errors.PhaseCall, []string{name}, "jnibind.Ref")
	}
	cls := C.getObjectClass(n.env, jobj(obj))
	defer C.deleteLocalRef(n.env, cls)
	m, err := n.methodID(ref(cls), name, sig, false)
	if err != nil {
		return jnibind.JValue{}, err
	}
	r := C.callInstance(n.env, jobj(obj), m, callKind(ret), cargs(args))
	if err := n.raised(errors.PhaseCall); err != nil {
		return jnibind.JValue{}, err
	}
	return fromC(r, ret), nil
}

func (n *Native) NewObject(class jnibind.Ref, sig string, args []jnibind.JValue) (jnibind.Ref, error) {
	m, err := n.methodID(class, "<init>", sig, false)
	if err != nil {
		return jnibind.Null, err
	}
	obj := C.newObject(n.env, jobj(class), m, cargs(args))
	if err := n.raised(errors.PhaseCall); err != nil {
		return jnibind.Null, err
	}
	return ref(obj), nil
}

func (n *Native) GetStaticField(class jnibind.Ref, name, sig string, kind descriptor.Kind) (jnibind.JValue, error) {
	f, err := n.fieldID(class, name, sig, true)
	if err != nil {
		return jnibind.JValue{}, err
	}
	return fromC(C.getStatic(n.env, jobj(class), f, callKind(kind)), kind), nil
}

func (n *Native) SetStaticField(class jnibind.Ref, name, sig string, v jnibind.JValue) error {
	f, err := n.fieldID(class, name, sig, true)
	if err != nil {
		return err
	}
	C.setStatic(n.env, jobj(class), f, callKind(v.Kind), toC(v))
	return n.raised(errors.PhaseField)
}

func (n *Native) GetField(obj jnibind.Ref, name, sig string, kind descriptor.Kind) (jnibind.JValue, error) {
	f, err := n.instanceField(obj, name, sig)
	if err != nil {
		return jnibind.JValue{}, err
	}
	return fromC(C.getInstance(n.env, jobj(obj), f, callKind(kind)), kind), nil
}

func (n *Native) SetField(obj jnibind.Ref, name, sig string, v jnibind.JValue) error {
	f, err := n.instanceField(obj, name, sig)
	if err != nil {
		return err
	}
	C.setInstance(n.env, jobj(obj), f, callKind(v.Kind), toC(v))
	return n.raised(errors.PhaseField)
}

func (n *Native) instanceField(obj jnibind.Ref, name, sig string) (C.jfieldID, error) {
	if obj == jnibind.Null {
		return nil, errors.NilPointer(errors.PhaseField, []string{name}, "jnibind.Ref")
	}
	cls := C.getObjectClass(n.env, jobj(obj))
	defer C.deleteLocalRef(n.env, cls)
	return n.fieldID(ref(cls), name, sig, false)
}

func (n *Native) NewArray(kind descriptor.Kind, length int32) (jnibind.Ref, error) {
	if !kind.IsPrimitive() {
		return jnibind.Null, errors.InvalidInput(errors.PhaseArray, "NewArray: "+kind.String()+" is not a primitive kind")
	}
	a := C.newArray(n.env, callKind(kind), C.jsize(length))
	if a == nil {
		return jnibind.Null, n.allocFailed(kind.String()+"[]", length)
	}
	return ref(a), nil
}

func (n *Native) NewObjectArray(length int32, elemClass, init jnibind.Ref) (jnibind.Ref, error) {
	a := C.newObjectArray(n.env, C.jsize(length), jobj(elemClass), jobj(init))
	if a == nil {
		return jnibind.Null, n.allocFailed("Object[]", length)
	}
	return ref(a), nil
}

// allocFailed reports a failed array allocation. A negative length is a
// plain exception; an exhausted heap is an allocation failure caused by it.
func (n *Native) allocFailed(what string, length int32) error {
	ex := n.pending(errors.PhaseArray)
	if ex == nil {
		return errors.AllocationFailed(errors.PhaseArray, what, int(length), nil)
	}
	if ex.JavaType == "java/lang/OutOfMemoryError" {
		return errors.AllocationFailed(errors.PhaseArray, what, int(length), ex)
	}
	return ex
}

func (n *Native) GetArrayLength(array jnibind.Ref) (int32, error) {
	if array == jnibind.Null {
		return 0, errors.NilPointer(errors.PhaseArray, []string{"GetArrayLength"}, "jnibind.Ref")
	}
	return int32(C.getArrayLength(n.env, jobj(array))), nil
}

func (n *Native) GetArrayRegion(array jnibind.Ref, kind descriptor.Kind, start int32, buf []byte) error {
	count, p, err := regionArgs(array, kind, buf, "GetArrayRegion")
	if err != nil || count == 0 {
		return err
	}
	C.getArrayRegion(n.env, jobj(array), callKind(kind), C.jsize(start), C.jsize(count), p)
	return n.arrayFailed(array, "GetArrayRegion", start)
}

func (n *Native) SetArrayRegion(array jnibind.Ref, kind descriptor.Kind, start int32, buf []byte) error {
	count, p, err := regionArgs(array, kind, buf, "SetArrayRegion")
	if err != nil || count == 0 {
		return err
	}
	C.setArrayRegion(n.env, jobj(array), callKind(kind), C.jsize(start), C.jsize(count), p)
	return n.arrayFailed(array, "SetArrayRegion", start)
}

func regionArgs(array jnibind.Ref, kind descriptor.Kind, buf []byte, op string) (int, unsafe.Pointer, error) {
	if array == jnibind.Null {
		return 0, nil, errors.NilPointer(errors.PhaseArray, []string{op}, "jnibind.Ref")
	}
	size := kind.Size()
	if !kind.IsPrimitive() || size == 0 || len(buf)%size != 0 {
		return 0, nil, errors.InvalidInput(errors.PhaseArray,
			fmt.Sprintf("%s: buffer of %d bytes does not hold %s elements", op, len(buf), kind))
	}
	if len(buf) == 0 {
		return 0, nil, nil
	}
	return len(buf) / size, unsafe.Pointer(&buf[0]), nil
}

// arrayFailed converts a pending ArrayIndexOutOfBoundsException into an
// out-of-bounds error carrying the exception as its cause.
func (n *Native) arrayFailed(array jnibind.Ref, op string, index int32) error {
	ex := n.pending(errors.PhaseArray)
	if ex == nil {
		return nil
	}
	if ex.JavaType != arrayIndexOutOfBounds {
		return ex
	}
	length := C.getArrayLength(n.env, jobj(array))
	e := errors.OutOfBounds(errors.PhaseArray, []string{op}, int(index), int(length))
	e.Cause = ex
	return e
}

func (n *Native) GetObjectArrayElement(array jnibind.Ref, index int32) (jnibind.Ref, error) {
	if array == jnibind.Null {
		return jnibind.Null, errors.NilPointer(errors.PhaseArray, []string{"GetObjectArrayElement"}, "jnibind.Ref")
	}
	v := C.getObjectArrayElement(n.env, jobj(array), C.jsize(index))
	if err := n.arrayFailed(array, "GetObjectArrayElement", index); err != nil {
		return jnibind.Null, err
	}
	return ref(v), nil
}

func (n *Native) SetObjectArrayElement(array jnibind.Ref, index int32, v jnibind.Ref) error {
	if array == jnibind.Null {
		return errors.NilPointer(errors.PhaseArray, []string{"SetObjectArrayElement"}, "jnibind.Ref")
	}
	C.setObjectArrayElement(n.env, jobj(array), C.jsize(index), jobj(v))
	return n.arrayFailed(array, "SetObjectArrayElement", index)
}

func (n *Native) Throw(className, msg string) error {
	cls, err := n.FindClass(className)
	if err != nil {
		return err
	}
	defer C.deleteLocalRef(n.env, jobj(cls))
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	if C.throwNew(n.env, jobj(cls), cmsg) != 0 {
		// ThrowNew leaves its own failure pending; clear it so the caller can throw again.
		e := errors.InvalidInput(errors.PhaseCall, "ThrowNew failed for "+className)
		if ex := n.pending(errors.PhaseCall); ex != nil {
			e.Cause = ex
		}
		return e
	}
	return nil
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
