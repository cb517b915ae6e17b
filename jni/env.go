package jni

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/errors"
)

// RuntimeException is thrown by ThrowError for errors that did not originate
// in the JVM.
const RuntimeException = "java/lang/RuntimeException"

// Env is the handle of one native method invocation. It is not safe for
// concurrent use and must not be retained past the call; see Enter.
type Env struct {
	native jnibind.Native
	frame  *frame
}

// Native returns the raw boundary, or an error once the scope is closed.
func (e *Env) Native() (jnibind.Native, error) {
	return e.check("Env.Native")
}

// Class resolves a slash-qualified class name.
func (e *Env) Class(name string) (Class, error) {
	n, err := e.check("Env.Class")
	if err != nil {
		return Class{}, err
	}
	ref, err := n.FindClass(name)
	if err != nil {
		Logger().Debug("class lookup failed", zap.String("class", name), zap.Error(err))
		return Class{}, err
	}
	return Class{env: e, ref: ref, name: name}, nil
}

// ClassFrom wraps a raw class reference, such as the jclass a static native
// method receives.
func (e *Env) ClassFrom(ref jnibind.Ref) Class {
	return Class{env: e, ref: ref}
}

// Object wraps a raw object reference.
func (e *Env) Object(ref jnibind.Ref) Object {
	return Object{env: e, ref: ref}
}

// Throw raises a new exception of the slash-qualified class with msg. The
// exception is delivered when the native method returns.
func (e *Env) Throw(class, msg string) error {
	n, err := e.check("Env.Throw")
	if err != nil {
		return err
	}
	return n.Throw(class, msg)
}

// ThrowError raises err in the JVM. An exception that was caught from an
// earlier call is rethrown with its original class; anything else becomes a
// RuntimeException carrying err's message. If the original class cannot be
// thrown from here, a RuntimeException naming it is raised instead.
func (e *Env) ThrowError(err error) error {
	if err == nil {
		return nil
	}
	var je *errors.Error
	if !stderrors.As(err, &je) || je.Kind != errors.KindException || je.JavaType == "" {
		Logger().Debug("throwing", zap.String("class", RuntimeException), zap.Error(err))
		return e.Throw(RuntimeException, err.Error())
	}
	Logger().Debug("throwing", zap.String("class", je.JavaType), zap.Error(err))
	terr := e.Throw(je.JavaType, je.Detail)
	if terr == nil || errors.KindOf(terr) == errors.KindExpired {
		return terr
	}
	Logger().Debug("rethrow failed, falling back", zap.String("class", je.JavaType), zap.Error(terr))
	return e.Throw(RuntimeException, je.JavaType+": "+je.Detail)
}
