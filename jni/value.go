package jni

import (
	"math"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
)

// Value is a tagged union over the eight primitives, void and an object
// reference. The zero Value is Void.
type Value struct {
	obj  Object
	bits uint64
	kind descriptor.Kind
}

func Boolean(v bool) Value {
	var b uint64
	if v {
		b = 1
	}
	return Value{kind: descriptor.KindBoolean, bits: b}
}

func Byte(v int8) Value { return Value{kind: descriptor.KindByte, bits: uint64(v)} }

// Char holds a UTF-16 code unit. Only runes in 0..0xFFFF cross the boundary
// intact; the conversion of larger runes is undefined and not masked.
func Char(v rune) Value { return Value{kind: descriptor.KindChar, bits: uint64(v)} }

func Short(v int16) Value { return Value{kind: descriptor.KindShort, bits: uint64(v)} }
func Int(v int32) Value { return Value{kind: descriptor.KindInt, bits: uint64(v)} }
func Long(v int64) Value { return Value{kind: descriptor.KindLong, bits: uint64(v)} }
func Float(v float32) Value { return Value{kind: descriptor.KindFloat, bits: uint64(math.Float32bits(v))} }
func Double(v float64) Value {
	return Value{kind: descriptor.KindDouble, bits: math.Float64bits(v)}
}

// Void is the result of a void method.
func Void() Value { return Value{} }

// ObjectValue wraps an object or array reference.
func ObjectValue(o Object) Value { return Value{kind: descriptor.KindObject, obj: o} }

// NullValue is a null object reference.
func NullValue() Value { return Value{kind: descriptor.KindObject} }

// Kind returns the variant tag. Array references report KindObject.
func (v Value) Kind() descriptor.Kind { return v.kind }

// IsNull reports whether v is a null object reference.
func (v Value) IsNull() bool {
	return v.kind == descriptor.KindObject && v.obj.ref == jnibind.Null
}

func (v Value) AsBoolean() (bool, bool) { return v.bits != 0, v.kind == descriptor.KindBoolean }
func (v Value) AsByte() (int8, bool) { return int8(v.bits), v.kind == descriptor.KindByte }
func (v Value) AsChar() (rune, bool) { return rune(v.bits), v.kind == descriptor.KindChar }
func (v Value) AsShort() (int16, bool) { return int16(v.bits), v.kind == descriptor.KindShort }
func (v Value) AsInt() (int32, bool) { return int32(v.bits), v.kind == descriptor.KindInt }
func (v Value) AsLong() (int64, bool) { return int64(v.bits), v.kind == descriptor.KindLong }

func (v Value) AsFloat() (float32, bool) {
	return math.Float32frombits(uint32(v.bits)), v.kind == descriptor.KindFloat
}

func (v Value) AsDouble() (float64, bool) {
	return math.Float64frombits(v.bits), v.kind == descriptor.KindDouble
}

func (v Value) AsObject() (Object, bool) { return v.obj, v.kind == descriptor.KindObject }

// Matches reports whether v may be passed in a position of type t.
// Any object Value, including null, matches every reference type; the
// runtime class is not checked. Nothing matches void, since no value can be
// passed in a void position.
func (v Value) Matches(t descriptor.Type) bool {
	if t.Kind() == descriptor.KindVoid {
		return false
	}
	if t.IsReference() {
		return v.kind == descriptor.KindObject
	}
	return v.kind == t.Kind()
}

func (v Value) String() string {
	return "jni.Value(" + v.kind.String() + ")"
}

// ToWire converts v into its jvalue form. Object identity is preserved.
func (e *Env) ToWire(v Value) jnibind.JValue {
	return toWire(v)
}

// FromWire converts a jvalue back into a Value bound to e.
func (e *Env) FromWire(jv jnibind.JValue) Value {
	return fromWire(e, jv)
}

func toWire(v Value) jnibind.JValue {
	switch v.kind {
	case descriptor.KindBoolean:
		return jnibind.BoolValue(v.bits != 0)
	case descriptor.KindByte:
		return jnibind.ByteValue(int8(v.bits))
	case descriptor.KindChar:
		return jnibind.CharValue(uint16(v.bits))
	case descriptor.KindShort:
		return jnibind.ShortValue(int16(v.bits))
	case descriptor.KindInt:
		return jnibind.IntValue(int32(v.bits))
	case descriptor.KindLong:
		return jnibind.LongValue(int64(v.bits))
	case descriptor.KindFloat:
		return jnibind.FloatValue(math.Float32frombits(uint32(v.bits)))
	case descriptor.KindDouble:
		return jnibind.DoubleValue(math.Float64frombits(v.bits))
	case descriptor.KindObject, descriptor.KindArray:
		return jnibind.RefValue(v.obj.ref)
	default:
		return jnibind.VoidValue()
	}
}

func fromWire(e *Env, jv jnibind.JValue) Value {
	switch jv.Kind {
	case descriptor.KindBoolean:
		return Boolean(jv.Bool())
	case descriptor.KindByte:
		return Byte(jv.Byte())
	case descriptor.KindChar:
		return Char(rune(jv.Char()))
	case descriptor.KindShort:
		return Short(jv.Short())
	case descriptor.KindInt:
		return Int(jv.Int())
	case descriptor.KindLong:
		return Long(jv.Long())
	case descriptor.KindFloat:
		return Float(jv.Float())
	case descriptor.KindDouble:
		return Double(jv.Double())
	case descriptor.KindObject, descriptor.KindArray:
		return ObjectValue(Object{env: e, ref: jv.Ref()})
	default:
		return Void()
	}
}
