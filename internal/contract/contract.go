// Package contract implements small assertion helpers used throughout the
// lowering core to check invariants on the resolved IR. A failed assertion
// is always a bug in the core or in the RIR the resolver handed it, never a
// recoverable user error, so these helpers panic rather than return an
// error. lower.Compile recovers at its top level and converts the panic into
// a fatal diagnostic (§7 kind 2).
package contract

import (
	"fmt"

	"github.com/golang/glog"
)

// Failure is the panic value raised by a failed assertion.
type Failure struct {
	msg string
}

func (f *Failure) Error() string { return f.msg }

func failfast(msg string) {
	glog.V(1).Info(msg)
	panic(&Failure{msg: msg})
}

// Assert panics if cond is false.
func Assert(cond bool) {
	if !cond {
		failfast("assertion failed")
	}
}

// Assertf panics with a formatted message if cond is false.
func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf(format, args...))
	}
}

// Require checks a precondition pertaining to a function parameter.
func Require(cond bool, param string) {
	if !cond {
		failfast(fmt.Sprintf("a precondition has failed for %v", param))
	}
}

// Requiref checks a precondition pertaining to a function parameter, with a
// formatted explanation.
func Requiref(cond bool, param string, format string, args ...interface{}) {
	if !cond {
		failfast(fmt.Sprintf("a precondition has failed for %v: %v", param, fmt.Sprintf(format, args...)))
	}
}

// Failf unconditionally raises an internal failure.
func Failf(format string, args ...interface{}) {
	failfast(fmt.Sprintf(format, args...))
}

// Ignore discards an error that is known to be safe to ignore, documenting
// the decision at the call site instead of silently dropping it.
func Ignore(err error) {
	if err != nil {
		glog.V(2).Infof("ignoring error: %v", err)
	}
}
