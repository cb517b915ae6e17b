package jnibind

import (
	"math"

	"github.com/wippyai/jnibind/descriptor"
)

// Ref is a raw JNI object reference (jobject, jclass, jstring, jarray).
type Ref uintptr

// Null is the null reference.
const Null Ref = 0

// JValue is the wire form of a jvalue: a kind tag and the raw bits of the
// member that tag selects. Primitives occupy the low bits; references are
// stored as their Ref value.
type JValue struct {
	Bits uint64
	Kind descriptor.Kind
}

func BoolValue(v bool) JValue {
	var b uint64
	if v {
		b = 1
	}
	return JValue{Kind: descriptor.KindBoolean, Bits: b}
}

func ByteValue(v int8) JValue {
	return JValue{Kind: descriptor.KindByte, Bits: uint64(uint8(v))}
}

// CharValue carries one UTF-16 code unit.
func CharValue(v uint16) JValue {
	return JValue{Kind: descriptor.KindChar, Bits: uint64(v)}
}

func ShortValue(v int16) JValue {
	return JValue{Kind: descriptor.KindShort, Bits: uint64(uint16(v))}
}

func IntValue(v int32) JValue {
	return JValue{Kind: descriptor.KindInt, Bits: uint64(uint32(v))}
}

func LongValue(v int64) JValue {
	return JValue{Kind: descriptor.KindLong, Bits: uint64(v)}
}

func FloatValue(v float32) JValue {
	return JValue{Kind: descriptor.KindFloat, Bits: uint64(math.Float32bits(v))}
}

func DoubleValue(v float64) JValue {
	return JValue{Kind: descriptor.KindDouble, Bits: math.Float64bits(v)}
}

// RefValue wraps an object or array reference.
func RefValue(r Ref) JValue {
	return JValue{Kind: descriptor.KindObject, Bits: uint64(r)}
}

// VoidValue is the result of a void method.
func VoidValue() JValue {
	return JValue{Kind: descriptor.KindVoid}
}

func (v JValue) Bool() bool { return v.Bits&0xff != 0 }
func (v JValue) Byte() int8 { return int8(v.Bits) }
func (v JValue) Char() uint16 { return uint16(v.Bits) }
func (v JValue) Short() int16 { return int16(v.Bits) }
func (v JValue) Int() int32 { return int32(v.Bits) }
func (v JValue) Long() int64 { return int64(v.Bits) }
func (v JValue) Float() float32 { return math.Float32frombits(uint32(v.Bits)) }
func (v JValue) Double() float64 { return math.Float64frombits(v.Bits) }
func (v JValue) Ref() Ref { return Ref(v.Bits) }
func (v JValue) IsReference() bool { return v.Kind.IsReference() }

// WireKind maps a Type to the kind tag its values carry on the wire.
// Arrays travel as plain references.
func WireKind(t descriptor.Type) descriptor.Kind {
	if t.IsReference() {
		return descriptor.KindObject
	}
	return t.Kind()
}

// Native is the set of JNIEnv operations the handle layer consumes.
//
// Every method reports a pending Java exception as an *errors.Error of kind
// KindException and clears it, and a failed class, method or field lookup as
// KindNotFound. Class names are slash-qualified; sig is a field or method
// descriptor.
type Native interface {
	FindClass(name string) (Ref, error)
	GetObjectClass(obj Ref) (Ref, error)

	// NewString creates a java.lang.String from UTF-16 code units.
	NewString(chars []uint16) (Ref, error)
	// GetStringChars returns the UTF-16 code units of a java.lang.String.
	GetStringChars(str Ref) ([]uint16, error)

	CallStaticMethod(class Ref, name, sig string, ret descriptor.Kind, args []JValue) (JValue, error)
	CallMethod(obj Ref, name, sig string, ret descriptor.Kind, args []JValue) (JValue, error)
	// NewObject invokes the constructor selected by sig, which returns V.
	NewObject(class Ref, sig string, args []JValue) (Ref, error)

	GetStaticField(class Ref, name, sig string, kind descriptor.Kind) (JValue, error)
	SetStaticField(class Ref, name, sig string, v JValue) error
	GetField(obj Ref, name, sig string, kind descriptor.Kind) (JValue, error)
	SetField(obj Ref, name, sig string, v JValue) error

	// NewArray allocates a primitive array of the given element kind.
	NewArray(kind descriptor.Kind, length int32) (Ref, error)
	// NewObjectArray allocates an array of elemClass with every slot set to init.
	NewObjectArray(length int32, elemClass Ref, init Ref) (Ref, error)
	GetArrayLength(array Ref) (int32, error)

	// GetArrayRegion copies len(buf)/kind.Size() elements starting at start
	// into buf, in native byte order.
	GetArrayRegion(array Ref, kind descriptor.Kind, start int32, buf []byte) error
	// SetArrayRegion copies buf into the array starting at start.
	SetArrayRegion(array Ref, kind descriptor.Kind, start int32, buf []byte) error
	GetObjectArrayElement(array Ref, index int32) (Ref, error)
	SetObjectArrayElement(array Ref, index int32, v Ref) error

	// Throw raises a new exception of className with msg in the JVM. The
	// exception stays pending until the native method returns.
	Throw(className, msg string) error
}
