package lower

import "fmt"

// InternalError is the typed panic value for §7 kind 2 (internal
// invariant violation): a driver stage discovered something only a bug in
// the resolver or the core itself could produce (an unresolved type proxy,
// a nil enclosing class, a zero-constructor datatype). Compile's top-level
// recover converts it into a fatal diagnostic instead of a raw panic
// message (SPEC_FULL §7 NEW).
type InternalError struct {
	Stage string
	Node  string
	Msg   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s at %s: %s", e.Stage, e.Node, e.Msg)
}

func internalf(stage, node, format string, args ...interface{}) {
	panic(&InternalError{Stage: stage, Node: node, Msg: fmt.Sprintf(format, args...)})
}
