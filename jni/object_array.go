package jni

import "github.com/wippyai/jnibind"

// DefaultElementClass types object arrays allocated without a class.
const DefaultElementClass = "java/lang/Object"

// ObjectArray is a handle to a Java array of references. Elements are read
// and written one reference at a time; there is no region copy.
type ObjectArray struct {
	env *Env
	ref jnibind.Ref
}

// NewObjectArray allocates an array of length null elements typed by the
// slash-qualified class. An empty class means java/lang/Object.
func NewObjectArray(env *Env, length int, class string) (ObjectArray, error) {
	n, err := env.check("NewObjectArray")
	if err != nil {
		return ObjectArray{}, err
	}
	if class == "" {
		class = DefaultElementClass
	}
	l, err := checkLength(class+"[]", length)
	if err != nil {
		return ObjectArray{}, err
	}
	cls, err := n.FindClass(class)
	if err != nil {
		return ObjectArray{}, err
	}
	ref, err := n.NewObjectArray(l, cls, jnibind.Null)
	if err != nil {
		return ObjectArray{}, err
	}
	return ObjectArray{env: env, ref: ref}, nil
}

// ObjectArrayFrom wraps an existing reference array. The element class is
// not verified.
func ObjectArrayFrom(env *Env, ref jnibind.Ref) ObjectArray {
	return ObjectArray{env: env, ref: ref}
}

// NewObjectArray is shorthand for the package-level NewObjectArray.
func (e *Env) NewObjectArray(length int, class string) (ObjectArray, error) {
	return NewObjectArray(e, length, class)
}

// Ref returns the raw array reference.
func (a ObjectArray) Ref() jnibind.Ref { return a.ref }

// Length returns the element count reported by the runtime.
func (a ObjectArray) Length() (int, error) {
	return arrayLength(a.env, a.ref, "ObjectArray.Length")
}

// Get returns element i, which may be null.
func (a ObjectArray) Get(i int) (Object, error) {
	n, err := a.env.check("ObjectArray.Get")
	if err != nil {
		return Object{}, err
	}
	idx, err := narrowIndex("ObjectArray", i)
	if err != nil {
		return Object{}, err
	}
	ref, err := n.GetObjectArrayElement(a.ref, idx)
	if err != nil {
		return Object{}, err
	}
	return Object{env: a.env, ref: ref}, nil
}

// Set stores v at element i. The runtime rejects a v whose class is not
// assignable to the element class.
func (a ObjectArray) Set(i int, v Object) error {
	n, err := a.env.check("ObjectArray.Set")
	if err != nil {
		return err
	}
	idx, err := narrowIndex("ObjectArray", i)
	if err != nil {
		return err
	}
	if err := checkLive(ObjectValue(v), []string{"ObjectArray", "Set"}); err != nil {
		return err
	}
	return n.SetObjectArrayElement(a.ref, idx, v.ref)
}
