package jni

import (
	"go.uber.org/zap"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

// Object is a non-owning handle to a Java object. The zero Object is null.
type Object struct {
	env *Env
	ref jnibind.Ref
}

// Ref returns the raw object reference.
func (o Object) Ref() jnibind.Ref { return o.ref }

// Env returns the Env the handle borrows.
func (o Object) Env() *Env { return o.env }

// IsNull reports whether o is the null reference.
func (o Object) IsNull() bool { return o.ref == jnibind.Null }

func (o Object) receiver(op string) (jnibind.Native, error) {
	n, err := o.env.check(op)
	if err != nil {
		return nil, err
	}
	if o.IsNull() {
		return nil, errors.NilPointer(errors.PhaseCall, []string{op}, "jni.Object")
	}
	return n, nil
}

// GetClass returns the runtime class of o, which may be a subclass of the
// class o was created from.
func (o Object) GetClass() (Class, error) {
	n, err := o.receiver("Object.GetClass")
	if err != nil {
		return Class{}, err
	}
	ref, err := n.GetObjectClass(o.ref)
	if err != nil {
		return Class{}, err
	}
	return Class{env: o.env, ref: ref}, nil
}

// CallMethod invokes the instance method name whose descriptor is sig,
// dispatching on the runtime class of o.
func (o Object) CallMethod(name string, sig descriptor.Signature, args ...Value) (Value, error) {
	n, err := o.receiver("Object.CallMethod")
	if err != nil {
		return Value{}, err
	}
	wire, err := wireArgs([]string{"<object>", name}, sig, args)
	if err != nil {
		return Value{}, err
	}
	desc := sig.Descriptor()
	Logger().Debug("call method", zap.String("method", name), zap.String("sig", desc))
	ret, err := n.CallMethod(o.ref, name, desc, jnibind.WireKind(sig.Return), wire)
	if err != nil {
		return Value{}, err
	}
	return fromWire(o.env, ret), nil
}

// GetField reads the instance field name of type t.
func (o Object) GetField(name string, t descriptor.Type) (Value, error) {
	n, err := o.receiver("Object.GetField")
	if err != nil {
		return Value{}, err
	}
	if t.Kind() == descriptor.KindVoid {
		return Value{}, errors.InvalidInput(errors.PhaseField, "field of type void")
	}
	jv, err := n.GetField(o.ref, name, t.Descriptor(), jnibind.WireKind(t))
	if err != nil {
		return Value{}, err
	}
	return fromWire(o.env, jv), nil
}

// SetField writes v to the instance field name of type t.
func (o Object) SetField(name string, t descriptor.Type, v Value) error {
	n, err := o.receiver("Object.SetField")
	if err != nil {
		return err
	}
	if err := checkValue([]string{"<object>", name}, t, v); err != nil {
		return err
	}
	return n.SetField(o.ref, name, t.Descriptor(), toWire(v))
}
