package jni

import (
	"go.uber.org/zap"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

// Class is a non-owning handle to a Java class. It borrows the Env that
// produced it.
type Class struct {
	env  *Env
	ref  jnibind.Ref
	name string
}

// Ref returns the raw class reference.
func (c Class) Ref() jnibind.Ref { return c.ref }

// Name returns the slash-qualified name the class was looked up by, or ""
// for a class obtained from a raw reference.
func (c Class) Name() string { return c.name }

// Env returns the Env the handle borrows.
func (c Class) Env() *Env { return c.env }

func (c Class) label() string {
	if c.name != "" {
		return c.name
	}
	return "<class>"
}

// CallStaticMethod invokes the static method name whose descriptor is sig.
// Each argument must match the parameter in the same position.
func (c Class) CallStaticMethod(name string, sig descriptor.Signature, args ...Value) (Value, error) {
	n, err := c.env.check("Class.CallStaticMethod")
	if err != nil {
		return Value{}, err
	}
	path := []string{c.label(), name}
	wire, err := wireArgs(path, sig, args)
	if err != nil {
		return Value{}, err
	}
	desc := sig.Descriptor()
	Logger().Debug("call static method",
		zap.String("class", c.label()),
		zap.String("method", name),
		zap.String("sig", desc))
	ret, err := n.CallStaticMethod(c.ref, name, desc, jnibind.WireKind(sig.Return), wire)
	if err != nil {
		return Value{}, err
	}
	return fromWire(c.env, ret), nil
}

// GetStaticField reads the static field name of type t.
func (c Class) GetStaticField(name string, t descriptor.Type) (Value, error) {
	n, err := c.env.check("Class.GetStaticField")
	if err != nil {
		return Value{}, err
	}
	if t.Kind() == descriptor.KindVoid {
		return Value{}, errors.InvalidInput(errors.PhaseField, "field of type void")
	}
	jv, err := n.GetStaticField(c.ref, name, t.Descriptor(), jnibind.WireKind(t))
	if err != nil {
		return Value{}, err
	}
	return fromWire(c.env, jv), nil
}

// SetStaticField writes v to the static field name of type t.
func (c Class) SetStaticField(name string, t descriptor.Type, v Value) error {
	n, err := c.env.check("Class.SetStaticField")
	if err != nil {
		return err
	}
	if err := checkValue([]string{c.label(), name}, t, v); err != nil {
		return err
	}
	return n.SetStaticField(c.ref, name, t.Descriptor(), toWire(v))
}

// Create constructs an instance through the constructor selected by the
// parameters of sig. The return type of sig is not encoded.
func (c Class) Create(sig descriptor.Signature, args ...Value) (Object, error) {
	n, err := c.env.check("Class.Create")
	if err != nil {
		return Object{}, err
	}
	wire, err := wireArgs([]string{c.label(), "<init>"}, sig, args)
	if err != nil {
		return Object{}, err
	}
	ref, err := n.NewObject(c.ref, sig.ConstructorDescriptor(), wire)
	if err != nil {
		return Object{}, err
	}
	return Object{env: c.env, ref: ref}, nil
}
