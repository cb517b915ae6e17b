package jni

import (
	"sync/atomic"

	"github.com/wippyai/jnibind"
	"github.com/wippyai/jnibind/errors"
)

// frame is the call scope shared by an Env and every handle derived from it.
type frame struct {
	closed atomic.Bool
}

// Enter opens the call scope of one native method invocation and returns
// its Env. The caller must call Exit before returning to the JVM; generated
// exports do this with defer.
func Enter(native jnibind.Native) *Env {
	return &Env{native: native, frame: &frame{}}
}

// Exit closes the call scope. Every handle derived from e fails with
// KindExpired afterwards. Exit is idempotent.
func (e *Env) Exit() {
	if e == nil || e.frame == nil {
		return
	}
	if e.frame.closed.CompareAndSwap(false, true) {
		Logger().Debug("call scope closed")
	}
}

// Active reports whether the call scope of e is still open.
func (e *Env) Active() bool {
	return e != nil && e.frame != nil && !e.frame.closed.Load()
}

// check returns the boundary of e, or an error if the scope is closed.
func (e *Env) check(op string) (jnibind.Native, error) {
	if e == nil || e.native == nil {
		return nil, errors.NilPointer(errors.PhaseScope, []string{op}, "*jni.Env")
	}
	if e.frame.closed.Load() {
		return nil, errors.Expired(op)
	}
	return e.native, nil
}
