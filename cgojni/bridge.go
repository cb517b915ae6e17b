package cgojni

// #include "bridge.h"
import "C"

import (
	"strings"
	"unicode/utf16"
	"unsafe"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

func jobj(r jnibind.Ref) C.jobject {
	return C.jobject(unsafe.Pointer(uintptr(r)))
}

func ref(o C.jobject) jnibind.Ref {
	return jnibind.Ref(uintptr(unsafe.Pointer(o)))
}

// callKind maps a wire kind onto the letter the C helpers switch on.
// References of any shape use the Object variants.
func callKind(k descriptor.Kind) C.char {
	if k.IsReference() {
		return 'L'
	}
	return C.char(k.Letter())
}

func toC(v jnibind.JValue) C.jvalue {
	var out C.jvalue
	p := unsafe.Pointer(&out)
	switch v.Kind {
	case descriptor.KindBoolean:
		if v.Bool() {
			*(*C.jboolean)(p) = C.JNI_TRUE
		}
	case descriptor.KindByte:
		*(*C.jbyte)(p) = C.jbyte(v.Byte())
	case descriptor.KindChar:
		*(*C.jchar)(p) = C.jchar(v.Char())
	case descriptor.KindShort:
		*(*C.jshort)(p) = C.jshort(v.Short())
	case descriptor.KindInt:
		*(*C.jint)(p) = C.jint(v.Int())
	case descriptor.KindLong:
		*(*C.jlong)(p) = C.jlong(v.Long())
	case descriptor.KindFloat:
		*(*C.jfloat)(p) = C.jfloat(v.Float())
	case descriptor.KindDouble:
		*(*C.jdouble)(p) = C.jdouble(v.Double())
	case descriptor.KindObject, descriptor.KindArray:
		*(*C.jobject)(p) = jobj(v.Ref())
	}
	return out
}

func fromC(v C.jvalue, kind descriptor.Kind) jnibind.JValue {
	p := unsafe.Pointer(&v)
	switch kind {
	case descriptor.KindBoolean:
		return jnibind.BoolValue(*(*C.jboolean)(p) != C.JNI_FALSE)
	case descriptor.KindByte:
		return jnibind.ByteValue(int8(*(*C.jbyte)(p)))
	case descriptor.KindChar:
		return jnibind.CharValue(uint16(*(*C.jchar)(p)))
	case descriptor.KindShort:
		return jnibind.ShortValue(int16(*(*C.jshort)(p)))
	case descriptor.KindInt:
		return jnibind.IntValue(int32(*(*C.jint)(p)))
	case descriptor.KindLong:
		return jnibind.LongValue(int64(*(*C.jlong)(p)))
	case descriptor.KindFloat:
		return jnibind.FloatValue(float32(*(*C.jfloat)(p)))
	case descriptor.KindDouble:
		return jnibind.DoubleValue(float64(*(*C.jdouble)(p)))
	case descriptor.KindObject, descriptor.KindArray:
		return jnibind.RefValue(ref(*(*C.jobject)(p)))
	default:
		return jnibind.VoidValue()
	}
}

// cargs converts arguments into a Go slice the JVM reads only for the
// duration of the call.
func cargs(args []jnibind.JValue) *C.jvalue {
	if len(args) == 0 {
		return nil
	}
	out := make([]C.jvalue, len(args))
	for i, a := range args {
		out[i] = toC(a)
	}
	return &out[0]
}

// goString copies a Java string. Invalid UTF-16 is replaced rather than
// reported; this is only used to describe exceptions.
func (n *Native) goString(s C.jobject) string {
	if s == nil {
		return ""
	}
	units := n.chars(s)
	return string(utf16.Decode(units))
}

func (n *Native) chars(s C.jobject) []uint16 {
	length := C.getStringLength(n.env, s)
	if length == 0 {
		return []uint16{}
	}
	units := make([]uint16, int(length))
	C.getStringRegion(n.env, s, length, (*C.jchar)(unsafe.Pointer(&units[0])))
	return units
}

// pending takes the pending exception, if any, and converts it into an
// error. The exception is cleared so the caller decides whether to
// rethrow it.
func (n *Native) pending(phase errors.Phase) *errors.Error {
	t := C.takeException(n.env)
	if t == nil {
		return nil
	}
	defer C.deleteLocalRef(n.env, t)

	var name, msg C.jobject
	C.describe(n.env, t, &name, &msg)
	class := strings.ReplaceAll(n.goString(name), ".", "/")
	message := n.goString(msg)
	if name != nil {
		C.deleteLocalRef(n.env, name)
	}
	if msg != nil {
		C.deleteLocalRef(n.env, msg)
	}
	if class == "" {
		class = "java/lang/Throwable"
	}
	return errors.Exception(phase, class, message)
}
