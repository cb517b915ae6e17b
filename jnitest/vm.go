package jnitest

import (
	"fmt"
	"sync"
	"unicode/utf16"

	"go.uber.org/zap"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
	"github.com/wippyai/jnibind/reftable"
)

// VM is an in-memory managed runtime implementing jnibind.Native.
type VM struct {
	heap      *reftable.Table[any]
	classes   map[string]*class
	pending   *Throwable
	maxLength int32
	mu        sync.Mutex
}

var _ jnibind.Native = (*VM)(nil)

type instance struct {
	class  *class
	fields map[string]jnibind.JValue
}

type str struct {
	chars []uint16
}

type array struct {
	class *class // array class, named by its descriptor
	elem  *class // element class of reference arrays
	data  []byte
	refs  []jnibind.Ref
	kind  descriptor.Kind
}

func (a *array) length() int32 {
	if a.kind == descriptor.KindObject {
		return int32(len(a.refs))
	}
	return int32(len(a.data) / a.kind.Size())
}

// Throwable is an exception raised inside the VM.
type Throwable struct {
	Class   string
	Message string
}

func (t *Throwable) String() string {
	if t.Message == "" {
		return t.Class
	}
	return t.Class + ": " + t.Message
}

// Option configures a VM.
type Option func(*VM)

// WithMaxArrayLength makes array allocations longer than n fail with an
// OutOfMemoryError.
func WithMaxArrayLength(n int32) Option {
	return func(vm *VM) { vm.maxLength = n }
}

// New returns a VM with the java/lang built-in classes defined.
func New(opts ...Option) *VM {
	vm := &VM{
		heap:      reftable.New[any](),
		classes:   make(map[string]*class),
		maxLength: 1 << 24,
	}
	for _, o := range opts {
		o(vm)
	}
	vm.heap.Subscribe(reftable.ObserverFunc[any](func(ev reftable.Event[any]) {
		if ce := Logger().Check(zap.DebugLevel, "heap"); ce != nil {
			ce.Write(
				zap.Stringer("event", ev.Type),
				zap.Uint32("ref", uint32(ev.Handle)),
				zap.String("type", fmt.Sprintf("%T", ev.Value)))
		}
	}))
	for _, def := range builtins {
		if _, err := vm.DefineClass(def); err != nil {
			panic(err)
		}
	}
	return vm
}

// DefineClass registers def and returns its class reference. The superclass
// must already be defined. Class references are pinned and cannot be
// released.
func (vm *VM) DefineClass(def ClassDef) (jnibind.Ref, error) {
	if def.Name == "" {
		return jnibind.Null, errors.InvalidInput(errors.PhaseValidate, "class name cannot be empty")
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if _, exists := vm.classes[def.Name]; exists {
		return jnibind.Null, errors.InvalidInput(errors.PhaseValidate, "class "+def.Name+" already defined")
	}
	var super *class
	if def.Name != "java/lang/Object" {
		name := def.Super
		if name == "" {
			name = "java/lang/Object"
		}
		s, ok := vm.classes[name]
		if !ok {
			return jnibind.Null, errors.NotFound("superclass", name, "")
		}
		super = s
	}
	c := &class{
		name:    def.Name,
		def:     def,
		super:   super,
		statics: make(map[string]jnibind.JValue, len(def.StaticFields)),
	}
	for _, f := range def.StaticFields {
		c.statics[memberKey(f.Name, f.Type.Descriptor())] = defaultValue(f)
	}
	ref, err := vm.allocPinned(c)
	if err != nil {
		return jnibind.Null, err
	}
	c.ref = ref
	vm.classes[def.Name] = c
	Logger().Debug("class defined", zap.String("class", def.Name))
	return ref, nil
}

// MustDefineClass is like DefineClass but panics on error.
func (vm *VM) MustDefineClass(def ClassDef) jnibind.Ref {
	ref, err := vm.DefineClass(def)
	if err != nil {
		panic(err)
	}
	return ref
}

// NewGoString allocates a java.lang.String holding s.
func (vm *VM) NewGoString(s string) (jnibind.Ref, error) {
	return vm.NewString(utf16.Encode([]rune(s)))
}

// GoString returns the contents of a java.lang.String. Unpaired surrogates
// are replaced; use jni.Env.GetString for strict decoding.
func (vm *VM) GoString(ref jnibind.Ref) (string, error) {
	chars, err := vm.GetStringChars(ref)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(chars)), nil
}

// Pending returns the exception raised by Throw and not yet cleared.
func (vm *VM) Pending() *Throwable {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.pending
}

// ClearPending discards the pending exception and returns it.
func (vm *VM) ClearPending() *Throwable {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	t := vm.pending
	vm.pending = nil
	return t
}

// Release frees a local reference. Class references cannot be released.
func (vm *VM) Release(ref jnibind.Ref) error {
	h := reftable.Handle(ref)
	if vm.heap.Pinned(h) {
		return errors.Wrap(errors.PhaseScope, errors.KindInvalidInput, reftable.ErrPinned, "release class reference")
	}
	if _, ok := vm.heap.Remove(h); !ok {
		return staleRef("Release", ref)
	}
	return nil
}

// Live returns the number of references on the heap, classes included.
func (vm *VM) Live() int {
	return vm.heap.Len()
}

// Close releases the heap. Every later operation fails.
func (vm *VM) Close() error {
	return vm.heap.Close()
}

// Throw creates a Java exception error for a Method to return.
func Throw(class, msg string) error {
	return errors.Exception(errors.PhaseCall, class, msg)
}

func (vm *VM) alloc(v any) (jnibind.Ref, error) {
	h, err := vm.heap.Insert(v)
	if err != nil {
		return jnibind.Null, errors.AllocationFailed(errors.PhaseCall, fmt.Sprintf("%T", v), 1, err)
	}
	return jnibind.Ref(h), nil
}

func (vm *VM) allocPinned(v any) (jnibind.Ref, error) {
	ref, err := vm.alloc(v)
	if err != nil {
		return ref, err
	}
	if !vm.heap.Pin(reftable.Handle(ref)) {
		return jnibind.Null, staleRef("pin", ref)
	}
	return ref, nil
}

func (vm *VM) deref(ref jnibind.Ref, op string) (any, error) {
	if ref == jnibind.Null {
		return nil, errors.NilPointer(errors.PhaseCall, []string{op}, "jobject")
	}
	if uint64(ref) > uint64(^reftable.Handle(0)) {
		return nil, staleRef(op, ref)
	}
	v, ok := vm.heap.Get(reftable.Handle(ref))
	if !ok {
		return nil, staleRef(op, ref)
	}
	return v, nil
}

func staleRef(op string, ref jnibind.Ref) *errors.Error {
	return errors.InvalidData(errors.PhaseCall, []string{op}, fmt.Sprintf("invalid reference %#x", uintptr(ref)))
}

func (vm *VM) classOf(ref jnibind.Ref, op string) (*class, error) {
	v, err := vm.deref(ref, op)
	if err != nil {
		return nil, err
	}
	c, ok := v.(*class)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseCall, []string{op}, fmt.Sprintf("%T", v), "java/lang/Class")
	}
	return c, nil
}

func (vm *VM) arrayOf(ref jnibind.Ref, op string) (*array, error) {
	v, err := vm.deref(ref, op)
	if err != nil {
		return nil, err
	}
	a, ok := v.(*array)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseArray, []string{op}, fmt.Sprintf("%T", v), "array")
	}
	return a, nil
}

// runtimeClass returns the class of any heap value.
func (vm *VM) runtimeClass(v any) *class {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	switch o := v.(type) {
	case *instance:
		return o.class
	case *str:
		return vm.classes["java/lang/String"]
	case *array:
		return o.class
	case *class:
		return vm.classes["java/lang/Class"]
	}
	return vm.classes["java/lang/Object"]
}

// arrayClass returns the class named by desc, defining it on first use.
func (vm *VM) arrayClass(desc string) (*class, error) {
	vm.mu.Lock()
	if c, ok := vm.classes[desc]; ok {
		vm.mu.Unlock()
		return c, nil
	}
	vm.mu.Unlock()
	if _, err := vm.DefineClass(ClassDef{Name: desc}); err != nil && errors.KindOf(err) != errors.KindInvalidInput {
		return nil, err
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.classes[desc], nil
}
