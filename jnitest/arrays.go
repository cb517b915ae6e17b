package jnitest

import (
	"fmt"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

func (vm *VM) NewArray(kind descriptor.Kind, length int32) (jnibind.Ref, error) {
	if !kind.IsPrimitive() {
		return jnibind.Null, errors.InvalidInput(errors.PhaseArray, "NewArray: "+kind.String()+" is not a primitive kind")
	}
	if err := vm.checkAlloc(kind.String()+"[]", length); err != nil {
		return jnibind.Null, err
	}
	c, err := vm.arrayClass("[" + string(kind.Letter()))
	if err != nil {
		return jnibind.Null, err
	}
	return vm.alloc(&array{
		class: c,
		kind:  kind,
		data:  make([]byte, int(length)*kind.Size()),
	})
}

func (vm *VM) NewObjectArray(length int32, elemClass jnibind.Ref, init jnibind.Ref) (jnibind.Ref, error) {
	elem, err := vm.classOf(elemClass, "NewObjectArray")
	if err != nil {
		return jnibind.Null, err
	}
	if err := vm.checkAlloc(elem.name+"[]", length); err != nil {
		return jnibind.Null, err
	}
	if init != jnibind.Null {
		if err := vm.checkStore(elem, init); err != nil {
			return jnibind.Null, err
		}
	}
	desc := "[" + descriptor.Object(elem.name).Descriptor()
	if elem.name[0] == '[' {
		desc = "[" + elem.name
	}
	c, err := vm.arrayClass(desc)
	if err != nil {
		return jnibind.Null, err
	}
	refs := make([]jnibind.Ref, length)
	for i := range refs {
		refs[i] = init
	}
	return vm.alloc(&array{class: c, elem: elem, kind: descriptor.KindObject, refs: refs})
}

func (vm *VM) checkAlloc(what string, length int32) error {
	if length < 0 {
		return errors.Exception(errors.PhaseArray, "java/lang/NegativeArraySizeException", fmt.Sprint(length))
	}
	if length > vm.maxLength {
		return errors.AllocationFailed(errors.PhaseArray, what, int(length),
			errors.Exception(errors.PhaseArray, "java/lang/OutOfMemoryError", "Requested array size exceeds VM limit"))
	}
	return nil
}

func (vm *VM) GetArrayLength(ref jnibind.Ref) (int32, error) {
	a, err := vm.arrayOf(ref, "GetArrayLength")
	if err != nil {
		return 0, err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return a.length(), nil
}

func (vm *VM) GetArrayRegion(ref jnibind.Ref, kind descriptor.Kind, start int32, buf []byte) error {
	a, off, err := vm.region(ref, kind, start, buf, "GetArrayRegion")
	if err != nil {
		return err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	copy(buf, a.data[off:])
	return nil
}

func (vm *VM) SetArrayRegion(ref jnibind.Ref, kind descriptor.Kind, start int32, buf []byte) error {
	a, off, err := vm.region(ref, kind, start, buf, "SetArrayRegion")
	if err != nil {
		return err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	copy(a.data[off:], buf)
	return nil
}

// region validates a region copy and returns the byte offset of start.
func (vm *VM) region(ref jnibind.Ref, kind descriptor.Kind, start int32, buf []byte, op string) (*array, int, error) {
	a, err := vm.arrayOf(ref, op)
	if err != nil {
		return nil, 0, err
	}
	if a.kind != kind {
		return nil, 0, errors.TypeMismatch(errors.PhaseArray, []string{op}, kind.String()+"[]", a.class.name)
	}
	size := kind.Size()
	if len(buf)%size != 0 {
		return nil, 0, errors.InvalidInput(errors.PhaseArray, fmt.Sprintf("%s: buffer of %d bytes is not a whole number of %s elements", op, len(buf), kind))
	}
	count := len(buf) / size
	vm.mu.Lock()
	length := a.length()
	vm.mu.Unlock()
	if start < 0 || int(start)+count > int(length) {
		bad := start
		if start >= 0 {
			bad = max(start, length)
		}
		return nil, 0, outOfBounds(op, bad, length)
	}
	return a, int(start) * size, nil
}

func (vm *VM) GetObjectArrayElement(ref jnibind.Ref, index int32) (jnibind.Ref, error) {
	a, err := vm.objectArray(ref, index, "GetObjectArrayElement")
	if err != nil {
		return jnibind.Null, err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return a.refs[index], nil
}

func (vm *VM) SetObjectArrayElement(ref jnibind.Ref, index int32, v jnibind.Ref) error {
	a, err := vm.objectArray(ref, index, "SetObjectArrayElement")
	if err != nil {
		return err
	}
	if v != jnibind.Null {
		if err := vm.checkStore(a.elem, v); err != nil {
			return err
		}
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	a.refs[index] = v
	return nil
}

func (vm *VM) objectArray(ref jnibind.Ref, index int32, op string) (*array, error) {
	a, err := vm.arrayOf(ref, op)
	if err != nil {
		return nil, err
	}
	if a.kind != descriptor.KindObject {
		return nil, errors.TypeMismatch(errors.PhaseArray, []string{op}, "object[]", a.class.name)
	}
	if index < 0 || index >= int32(len(a.refs)) {
		return nil, outOfBounds(op, index, int32(len(a.refs)))
	}
	return a, nil
}

// checkStore rejects a value whose class is not assignable to elem.
func (vm *VM) checkStore(elem *class, v jnibind.Ref) error {
	obj, err := vm.deref(v, "store")
	if err != nil {
		return err
	}
	if c := vm.runtimeClass(obj); !c.isSubclassOf(elem) {
		return errors.Exception(errors.PhaseArray, "java/lang/ArrayStoreException", c.name)
	}
	return nil
}

// outOfBounds reports an ArrayIndexOutOfBoundsException as KindOutOfBounds
// with the exception as cause.
func outOfBounds(op string, index, length int32) *errors.Error {
	e := errors.OutOfBounds(errors.PhaseArray, []string{op}, int(index), int(length))
	e.Cause = errors.Exception(errors.PhaseArray, "java/lang/ArrayIndexOutOfBoundsException",
		fmt.Sprintf("Index %d out of bounds for length %d", index, length))
	return e
}
