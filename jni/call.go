package jni

import (
	"strconv"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/descriptor"
	"github.com/wippyai/jnibind/errors"
)

// wireArgs checks args against the parameters of sig and converts them.
// Object arguments from a closed scope are rejected.
func wireArgs(path []string, sig descriptor.Signature, args []Value) ([]jnibind.JValue, error) {
	if len(args) != len(sig.Params) {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			JavaType(sig.Descriptor()).
			Detail("%d arguments for %d parameters", len(args), len(sig.Params)).
			Build()
	}
	wire := make([]jnibind.JValue, len(args))
	for i, p := range sig.Params {
		a := args[i]
		if !a.Matches(p) {
			return nil, errors.TypeMismatch(errors.PhaseEncode, argPath(path, i), a.String(), p.Descriptor())
		}
		if err := checkLive(a, argPath(path, i)); err != nil {
			return nil, err
		}
		wire[i] = toWire(a)
	}
	return wire, nil
}

// checkValue checks a single field value against its type.
func checkValue(path []string, t descriptor.Type, v Value) error {
	if t.Kind() == descriptor.KindVoid {
		return errors.InvalidInput(errors.PhaseField, "field of type void")
	}
	if !v.Matches(t) {
		return errors.TypeMismatch(errors.PhaseEncode, path, v.String(), t.Descriptor())
	}
	return checkLive(v, path)
}

func checkLive(v Value, path []string) error {
	if v.kind != descriptor.KindObject || v.obj.env == nil {
		return nil
	}
	if !v.obj.env.Active() {
		return errors.New(errors.PhaseScope, errors.KindExpired).
			Path(path...).
			Detail("object argument outlived its native call").
			Build()
	}
	return nil
}

func argPath(path []string, i int) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, "arg"+strconv.Itoa(i))
}
