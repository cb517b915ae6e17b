package descriptor

// Kind is the variant tag of a Type.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindVoid:    "void",
	KindBoolean: "boolean",
	KindByte:    "byte",
	KindChar:    "char",
	KindShort:   "short",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindObject:  "object",
	KindArray:   "array",
}

// kindLetters holds the one-letter descriptor of every kind that has one.
var kindLetters = [...]byte{
	KindVoid:    'V',
	KindBoolean: 'Z',
	KindByte:    'B',
	KindChar:    'C',
	KindShort:   'S',
	KindInt:     'I',
	KindLong:    'J',
	KindFloat:   'F',
	KindDouble:  'D',
	KindObject:  'L',
	KindArray:   '[',
}

// kindSizes is the width in bytes of a primitive on the JNI wire.
var kindSizes = [...]int{
	KindBoolean: 1,
	KindByte:    1,
	KindChar:    2,
	KindShort:   2,
	KindInt:     4,
	KindLong:    8,
	KindFloat:   4,
	KindDouble:  8,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Letter returns the leading descriptor byte for k, or 0 for an unknown kind.
func (k Kind) Letter() byte {
	if int(k) < len(kindLetters) {
		return kindLetters[k]
	}
	return 0
}

// IsPrimitive reports whether k is one of the eight primitive kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindDouble
}

// IsReference reports whether values of kind k are object references.
func (k Kind) IsReference() bool {
	return k == KindObject || k == KindArray
}

// Size returns the wire width of a primitive kind in bytes, and 0 otherwise.
func (k Kind) Size() int {
	if k.IsPrimitive() {
		return kindSizes[k]
	}
	return 0
}
