package jni

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

// Array is the capability shared by every typed array handle.
// Bounds are checked by the runtime, not locally.
type Array[E any] interface {
	Ref() jnibind.Ref
	// Length queries the runtime on every call.
	Length() (int, error)
	Get(i int) (E, error)
	Set(i int, v E) error
}

var (
	_ Array[bool]    = BooleanArray{}
	_ Array[int8]    = ByteArray{}
	_ Array[rune]    = CharArray{}
	_ Array[int16]   = ShortArray{}
	_ Array[int32]   = IntArray{}
	_ Array[int64]   = LongArray{}
	_ Array[float32] = FloatArray{}
	_ Array[float64] = DoubleArray{}
	_ Array[Object]  = ObjectArray{}
)

// elementCodec moves one element of kind between Go and native byte order.
type elementCodec[E any] struct {
	put  func(buf []byte, v E)
	get  func(buf []byte) E
	kind descriptor.Kind
}

var ne = binary.NativeEndian

var (
	booleanCodec = &elementCodec[bool]{
		kind: descriptor.KindBoolean,
		put: func(b []byte, v bool) {
			b[0] = 0
			if v {
				b[0] = 1
			}
		},
		get: func(b []byte) bool { return b[0] != 0 },
	}
	byteCodec = &elementCodec[int8]{
		kind: descriptor.KindByte,
		put:  func(b []byte, v int8) { b[0] = byte(v) },
		get:  func(b []byte) int8 { return int8(b[0]) },
	}
	charCodec = &elementCodec[rune]{
		kind: descriptor.KindChar,
		put:  func(b []byte, v rune) { ne.PutUint16(b, uint16(v)) },
		get:  func(b []byte) rune { return rune(ne.Uint16(b)) },
	}
	shortCodec = &elementCodec[int16]{
		kind: descriptor.KindShort,
		put:  func(b []byte, v int16) { ne.PutUint16(b, uint16(v)) },
		get:  func(b []byte) int16 { return int16(ne.Uint16(b)) },
	}
	intCodec = &elementCodec[int32]{
		kind: descriptor.KindInt,
		put:  func(b []byte, v int32) { ne.PutUint32(b, uint32(v)) },
		get:  func(b []byte) int32 { return int32(ne.Uint32(b)) },
	}
	longCodec = &elementCodec[int64]{
		kind: descriptor.KindLong,
		put:  func(b []byte, v int64) { ne.PutUint64(b, uint64(v)) },
		get:  func(b []byte) int64 { return int64(ne.Uint64(b)) },
	}
	floatCodec = &elementCodec[float32]{
		kind: descriptor.KindFloat,
		put:  func(b []byte, v float32) { ne.PutUint32(b, math.Float32bits(v)) },
		get:  func(b []byte) float32 { return math.Float32frombits(ne.Uint32(b)) },
	}
	doubleCodec = &elementCodec[float64]{
		kind: descriptor.KindDouble,
		put:  func(b []byte, v float64) { ne.PutUint64(b, math.Float64bits(v)) },
		get:  func(b []byte) float64 { return math.Float64frombits(ne.Uint64(b)) },
	}
)

// primitiveArray implements Array over single-element region copies.
type primitiveArray[E any] struct {
	env   *Env
	codec *elementCodec[E]
	ref   jnibind.Ref
}

func newPrimitiveArray[E any](env *Env, codec *elementCodec[E], length int) (primitiveArray[E], error) {
	n, err := env.check("New" + arrayName(codec.kind))
	if err != nil {
		return primitiveArray[E]{}, err
	}
	l, err := checkLength(codec.kind.String()+"[]", length)
	if err != nil {
		return primitiveArray[E]{}, err
	}
	ref, err := n.NewArray(codec.kind, l)
	if err != nil {
		return primitiveArray[E]{}, err
	}
	return primitiveArray[E]{env: env, codec: codec, ref: ref}, nil
}

// Ref returns the raw array reference.
func (a primitiveArray[E]) Ref() jnibind.Ref { return a.ref }

// Length returns the element count reported by the runtime.
func (a primitiveArray[E]) Length() (int, error) {
	return arrayLength(a.env, a.ref, a.name()+".Length")
}

// Get reads element i.
func (a primitiveArray[E]) Get(i int) (E, error) {
	var zero E
	n, err := a.env.check(a.name() + ".Get")
	if err != nil {
		return zero, err
	}
	idx, err := a.index(i)
	if err != nil {
		return zero, err
	}
	var buf [8]byte
	b := buf[:a.codec.kind.Size()]
	if err := n.GetArrayRegion(a.ref, a.codec.kind, idx, b); err != nil {
		return zero, err
	}
	return a.codec.get(b), nil
}

// Set writes v to element i.
func (a primitiveArray[E]) Set(i int, v E) error {
	n, err := a.env.check(a.name() + ".Set")
	if err != nil {
		return err
	}
	idx, err := a.index(i)
	if err != nil {
		return err
	}
	var buf [8]byte
	b := buf[:a.codec.kind.Size()]
	a.codec.put(b, v)
	return n.SetArrayRegion(a.ref, a.codec.kind, idx, b)
}

// Region copies len(dst) elements starting at start into dst.
func (a primitiveArray[E]) Region(start int, dst []E) error {
	n, err := a.env.check(a.name() + ".Region")
	if err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	idx, err := a.index(start)
	if err != nil {
		return err
	}
	size := a.codec.kind.Size()
	buf := make([]byte, len(dst)*size)
	if err := n.GetArrayRegion(a.ref, a.codec.kind, idx, buf); err != nil {
		return err
	}
	for j := range dst {
		dst[j] = a.codec.get(buf[j*size:])
	}
	return nil
}

// SetRegion copies src into the array starting at start.
func (a primitiveArray[E]) SetRegion(start int, src []E) error {
	n, err := a.env.check(a.name() + ".SetRegion")
	if err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	idx, err := a.index(start)
	if err != nil {
		return err
	}
	size := a.codec.kind.Size()
	buf := make([]byte, len(src)*size)
	for j, v := range src {
		a.codec.put(buf[j*size:], v)
	}
	return n.SetArrayRegion(a.ref, a.codec.kind, idx, buf)
}

func (a primitiveArray[E]) index(i int) (int32, error) {
	return narrowIndex(a.name(), i)
}

func (a primitiveArray[E]) name() string {
	if a.codec == nil {
		return "Array"
	}
	return arrayName(a.codec.kind)
}

// narrowIndex converts i to a jsize. Indices that do not fit cannot be in
// bounds; anything else is left for the runtime to check.
func narrowIndex(what string, i int) (int32, error) {
	if int(int32(i)) != i {
		return 0, errors.OutOfBounds(errors.PhaseArray, []string{what}, i, -1)
	}
	return int32(i), nil
}

func arrayLength(env *Env, ref jnibind.Ref, op string) (int, error) {
	n, err := env.check(op)
	if err != nil {
		return 0, err
	}
	l, err := n.GetArrayLength(ref)
	if err != nil {
		return 0, err
	}
	return int(l), nil
}

func checkLength(what string, length int) (int32, error) {
	if length < 0 || length > math.MaxInt32 {
		return 0, errors.New(errors.PhaseArray, errors.KindInvalidInput).
			GoType(what).
			Value(length).
			Detail("invalid array length %d", length).
			Build()
	}
	return int32(length), nil
}

func arrayName(k descriptor.Kind) string {
	switch k {
	case descriptor.KindBoolean:
		return "BooleanArray"
	case descriptor.KindByte:
		return "ByteArray"
	case descriptor.KindChar:
		return "CharArray"
	case descriptor.KindShort:
		return "ShortArray"
	case descriptor.KindInt:
		return "IntArray"
	case descriptor.KindLong:
		return "LongArray"
	case descriptor.KindFloat:
		return "FloatArray"
	case descriptor.KindDouble:
		return "DoubleArray"
	default:
		return "ObjectArray"
	}
}
