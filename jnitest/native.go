package jnitest

import (
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

// FindClass resolves a slash-qualified class name or an array descriptor.
func (vm *VM) FindClass(name string) (jnibind.Ref, error) {
	if strings.HasPrefix(name, "[") {
		c, err := vm.arrayClass(name)
		if err != nil {
			return jnibind.Null, err
		}
		return c.ref, nil
	}
	vm.mu.Lock()
	c, ok := vm.classes[name]
	vm.mu.Unlock()
	if !ok {
		return jnibind.Null, errors.NotFound("class", name, "")
	}
	return c.ref, nil
}

func (vm *VM) GetObjectClass(obj jnibind.Ref) (jnibind.Ref, error) {
	v, err := vm.deref(obj, "GetObjectClass")
	if err != nil {
		return jnibind.Null, err
	}
	return vm.runtimeClass(v).ref, nil
}

func (vm *VM) NewString(chars []uint16) (jnibind.Ref, error) {
	return vm.alloc(&str{chars: append([]uint16(nil), chars...)})
}

func (vm *VM) GetStringChars(ref jnibind.Ref) ([]uint16, error) {
	v, err := vm.deref(ref, "GetStringChars")
	if err != nil {
		return nil, err
	}
	s, ok := v.(*str)
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseString, []string{"GetStringChars"}, fmt.Sprintf("%T", v), "java/lang/String")
	}
	return append([]uint16(nil), s.chars...), nil
}

func (vm *VM) CallStaticMethod(cls jnibind.Ref, name, sig string, ret descriptor.Kind, args []jnibind.JValue) (jnibind.JValue, error) {
	c, err := vm.classOf(cls, "CallStaticMethod")
	if err != nil {
		return jnibind.JValue{}, err
	}
	fn, ok := c.findMethod(true, name+sig)
	if !ok {
		return jnibind.JValue{}, errors.NotFound("static method", c.name+"."+name, sig)
	}
	return vm.invoke(c.name+"."+name, fn, jnibind.Null, ret, args)
}

func (vm *VM) CallMethod(obj jnibind.Ref, name, sig string, ret descriptor.Kind, args []jnibind.JValue) (jnibind.JValue, error) {
	v, err := vm.deref(obj, "CallMethod")
	if err != nil {
		return jnibind.JValue{}, err
	}
	c := vm.runtimeClass(v)
	fn, ok := c.findMethod(false, name+sig)
	if !ok {
		return jnibind.JValue{}, errors.NotFound("method", c.name+"."+name, sig)
	}
	return vm.invoke(c.name+"."+name, fn, obj, ret, args)
}

func (vm *VM) NewObject(cls jnibind.Ref, sig string, args []jnibind.JValue) (jnibind.Ref, error) {
	c, err := vm.classOf(cls, "NewObject")
	if err != nil {
		return jnibind.Null, err
	}
	ctor, ok := c.def.Constructors[sig]
	if !ok && (len(c.def.Constructors) > 0 || sig != "()V") {
		return jnibind.Null, errors.NotFound("constructor", c.name+".<init>", sig)
	}
	ref, err := vm.alloc(&instance{class: c, fields: c.instanceFields()})
	if err != nil {
		return jnibind.Null, err
	}
	if ctor != nil {
		if _, err := vm.invoke(c.name+".<init>", ctor, ref, descriptor.KindVoid, args); err != nil {
			_ = vm.Release(ref)
			return jnibind.Null, err
		}
	}
	return ref, nil
}

// invoke runs fn without the VM lock and converts its result.
func (vm *VM) invoke(label string, fn Method, this jnibind.Ref, ret descriptor.Kind, args []jnibind.JValue) (jnibind.JValue, error) {
	res, err := fn(vm, this, args)
	if err != nil {
		raised := asException(err)
		Logger().Debug("exception raised",
			zap.String("method", label),
			zap.String("class", raised.JavaType),
			zap.String("message", raised.Detail))
		return jnibind.JValue{}, raised
	}
	if ret == descriptor.KindVoid {
		return jnibind.VoidValue(), nil
	}
	if res.Kind != ret {
		return jnibind.JValue{}, errors.TypeMismatch(errors.PhaseDecode, []string{label}, res.Kind.String(), ret.String())
	}
	return res, nil
}

// asException converts an error returned by a Method into the exception
// the JVM would report.
func asException(err error) *errors.Error {
	var je *errors.Error
	if stderrors.As(err, &je) && je.Kind == errors.KindException {
		return je
	}
	e := errors.Exception(errors.PhaseCall, "java/lang/RuntimeException", err.Error())
	e.Cause = err
	return e
}

func (vm *VM) GetStaticField(cls jnibind.Ref, name, sig string, kind descriptor.Kind) (jnibind.JValue, error) {
	c, err := vm.classOf(cls, "GetStaticField")
	if err != nil {
		return jnibind.JValue{}, err
	}
	key := memberKey(name, sig)
	vm.mu.Lock()
	defer vm.mu.Unlock()
	owner, ok := c.findStatic(key)
	if !ok {
		return jnibind.JValue{}, errors.NotFound("static field", c.name+"."+name, sig)
	}
	v := owner.statics[key]
	if v.Kind != kind {
		return jnibind.JValue{}, fieldMismatch(c.name, name, kind, sig)
	}
	return v, nil
}

func (vm *VM) SetStaticField(cls jnibind.Ref, name, sig string, v jnibind.JValue) error {
	c, err := vm.classOf(cls, "SetStaticField")
	if err != nil {
		return err
	}
	key := memberKey(name, sig)
	vm.mu.Lock()
	defer vm.mu.Unlock()
	owner, ok := c.findStatic(key)
	if !ok {
		return errors.NotFound("static field", c.name+"."+name, sig)
	}
	if owner.statics[key].Kind != v.Kind {
		return fieldMismatch(c.name, name, v.Kind, sig)
	}
	owner.statics[key] = v
	return nil
}

func (vm *VM) GetField(obj jnibind.Ref, name, sig string, kind descriptor.Kind) (jnibind.JValue, error) {
	inst, err := vm.instanceOf(obj, "GetField", name, sig)
	if err != nil {
		return jnibind.JValue{}, err
	}
	key := memberKey(name, sig)
	vm.mu.Lock()
	defer vm.mu.Unlock()
	v, ok := inst.fields[key]
	if !ok {
		return jnibind.JValue{}, errors.NotFound("field", inst.class.name+"."+name, sig)
	}
	if v.Kind != kind {
		return jnibind.JValue{}, fieldMismatch(inst.class.name, name, kind, sig)
	}
	return v, nil
}

func (vm *VM) SetField(obj jnibind.Ref, name, sig string, v jnibind.JValue) error {
	inst, err := vm.instanceOf(obj, "SetField", name, sig)
	if err != nil {
		return err
	}
	key := memberKey(name, sig)
	vm.mu.Lock()
	defer vm.mu.Unlock()
	old, ok := inst.fields[key]
	if !ok {
		return errors.NotFound("field", inst.class.name+"."+name, sig)
	}
	if old.Kind != v.Kind {
		return fieldMismatch(inst.class.name, name, v.Kind, sig)
	}
	inst.fields[key] = v
	return nil
}

func (vm *VM) instanceOf(obj jnibind.Ref, op, name, sig string) (*instance, error) {
	v, err := vm.deref(obj, op)
	if err != nil {
		return nil, err
	}
	inst, ok := v.(*instance)
	if !ok {
		return nil, errors.NotFound("field", vm.runtimeClass(v).name+"."+name, sig)
	}
	return inst, nil
}

func fieldMismatch(class, name string, kind descriptor.Kind, sig string) *errors.Error {
	return errors.TypeMismatch(errors.PhaseField, []string{class, name}, kind.String(), sig)
}

// Throw raises className with msg. The exception stays pending until
// ClearPending.
func (vm *VM) Throw(className, msg string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c, ok := vm.classes[className]
	if !ok {
		return errors.NotFound("class", className, "")
	}
	if !c.isSubclassOf(vm.classes["java/lang/Throwable"]) {
		return errors.InvalidInput(errors.PhaseCall, className+" is not a java/lang/Throwable")
	}
	vm.pending = &Throwable{Class: className, Message: msg}
	return nil
}
