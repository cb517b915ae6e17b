package jni

import "github.com/wippyai/jnibind"

// BooleanArray is a handle to a Java boolean[].
type BooleanArray struct{ primitiveArray[bool] }

// NewBooleanArray allocates a boolean[] of length zero-valued elements.
func NewBooleanArray(env *Env, length int) (BooleanArray, error) {
	a, err := newPrimitiveArray(env, booleanCodec, length)
	return BooleanArray{a}, err
}

// BooleanArrayFrom wraps an existing boolean[] reference. The element kind is not
// verified.
func BooleanArrayFrom(env *Env, ref jnibind.Ref) BooleanArray {
	return BooleanArray{primitiveArray[bool]{env: env, codec: booleanCodec, ref: ref}}
}

// NewBooleanArray is shorthand for the package-level NewBooleanArray.
func (e *Env) NewBooleanArray(length int) (BooleanArray, error) {
	return NewBooleanArray(e, length)
}

// ByteArray is a handle to a Java byte[].
type ByteArray struct{ primitiveArray[int8] }

// NewByteArray allocates a byte[] of length zero-valued elements.
func NewByteArray(env *Env, length int) (ByteArray, error) {
	a, err := newPrimitiveArray(env, byteCodec, length)
	return ByteArray{a}, err
}

// ByteArrayFrom wraps an existing byte[] reference. The element kind is not
// verified.
func ByteArrayFrom(env *Env, ref jnibind.Ref) ByteArray {
	return ByteArray{primitiveArray[int8]{env: env, codec: byteCodec, ref: ref}}
}

// NewByteArray is shorthand for the package-level NewByteArray.
func (e *Env) NewByteArray(length int) (ByteArray, error) {
	return NewByteArray(e, length)
}

// CharArray is a handle to a Java char[].
//
// Elements are UTF-16 code units widened to rune; Set truncates to 16 bits.
type CharArray struct{ primitiveArray[rune] }

// NewCharArray allocates a char[] of length zero-valued elements.
func NewCharArray(env *Env, length int) (CharArray, error) {
	a, err := newPrimitiveArray(env, charCodec, length)
	return CharArray{a}, err
}

// CharArrayFrom wraps an existing char[] reference. The element kind is not
// verified.
func CharArrayFrom(env *Env, ref jnibind.Ref) CharArray {
	return CharArray{primitiveArray[rune]{env: env, codec: charCodec, ref: ref}}
}

// NewCharArray is shorthand for the package-level NewCharArray.
func (e *Env) NewCharArray(length int) (CharArray, error) {
	return NewCharArray(e, length)
}

// ShortArray is a handle to a Java short[].
type ShortArray struct{ primitiveArray[int16] }

// NewShortArray allocates a short[] of length zero-valued elements.
func NewShortArray(env *Env, length int) (ShortArray, error) {
	a, err := newPrimitiveArray(env, shortCodec, length)
	return ShortArray{a}, err
}

// ShortArrayFrom wraps an existing short[] reference. The element kind is not
// verified.
func ShortArrayFrom(env *Env, ref jnibind.Ref) ShortArray {
	return ShortArray{primitiveArray[int16]{env: env, codec: shortCodec, ref: ref}}
}

// NewShortArray is shorthand for the package-level NewShortArray.
func (e *Env) NewShortArray(length int) (ShortArray, error) {
	return NewShortArray(e, length)
}

// IntArray is a handle to a Java int[].
type IntArray struct{ primitiveArray[int32] }

// NewIntArray allocates a int[] of length zero-valued elements.
func NewIntArray(env *Env, length int) (IntArray, error) {
	a, err := newPrimitiveArray(env, intCodec, length)
	return IntArray{a}, err
}

// IntArrayFrom wraps an existing int[] reference. The element kind is not
// verified.
func IntArrayFrom(env *Env, ref jnibind.Ref) IntArray {
	return IntArray{primitiveArray[int32]{env: env, codec: intCodec, ref: ref}}
}

// NewIntArray is shorthand for the package-level NewIntArray.
func (e *Env) NewIntArray(length int) (IntArray, error) {
	return NewIntArray(e, length)
}

// LongArray is a handle to a Java long[].
type LongArray struct{ primitiveArray[int64] }

// NewLongArray allocates a long[] of length zero-valued elements.
func NewLongArray(env *Env, length int) (LongArray, error) {
	a, err := newPrimitiveArray(env, longCodec, length)
	return LongArray{a}, err
}

// LongArrayFrom wraps an existing long[] reference. The element kind is not
// verified.
func LongArrayFrom(env *Env, ref jnibind.Ref) LongArray {
	return LongArray{primitiveArray[int64]{env: env, codec: longCodec, ref: ref}}
}

// NewLongArray is shorthand for the package-level NewLongArray.
func (e *Env) NewLongArray(length int) (LongArray, error) {
	return NewLongArray(e, length)
}

// FloatArray is a handle to a Java float[].
type FloatArray struct{ primitiveArray[float32] }

// NewFloatArray allocates a float[] of length zero-valued elements.
func NewFloatArray(env *Env, length int) (FloatArray, error) {
	a, err := newPrimitiveArray(env, floatCodec, length)
	return FloatArray{a}, err
}

// FloatArrayFrom wraps an existing float[] reference. The element kind is not
// verified.
func FloatArrayFrom(env *Env, ref jnibind.Ref) FloatArray {
	return FloatArray{primitiveArray[float32]{env: env, codec: floatCodec, ref: ref}}
}

// NewFloatArray is shorthand for the package-level NewFloatArray.
func (e *Env) NewFloatArray(length int) (FloatArray, error) {
	return NewFloatArray(e, length)
}

// DoubleArray is a handle to a Java double[].
type DoubleArray struct{ primitiveArray[float64] }

// NewDoubleArray allocates a double[] of length zero-valued elements.
func NewDoubleArray(env *Env, length int) (DoubleArray, error) {
	a, err := newPrimitiveArray(env, doubleCodec, length)
	return DoubleArray{a}, err
}

// DoubleArrayFrom wraps an existing double[] reference. The element kind is not
// verified.
func DoubleArrayFrom(env *Env, ref jnibind.Ref) DoubleArray {
	return DoubleArray{primitiveArray[float64]{env: env, codec: doubleCodec, ref: ref}}
}

// NewDoubleArray is shorthand for the package-level NewDoubleArray.
func (e *Env) NewDoubleArray(length int) (DoubleArray, error) {
	return NewDoubleArray(e, length)
}
