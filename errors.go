package vrml

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by the registry, node instances and
// the router wraps exactly one of these in an *InterfaceError.
var (
	// ErrUnsupportedInterface reports a name the node type does not expose,
	// or an access its category does not permit (e.g. reading an eventIn).
	ErrUnsupportedInterface = errors.New("unsupported interface")
	// ErrTypeMismatch reports a value whose kind differs from the
	// interface's declared kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrDuplicateInterface reports a name/category clash while building a
	// node type.
	ErrDuplicateInterface = errors.New("duplicate interface")
	// ErrAllocationFailure is unrecoverable and always propagates.
	ErrAllocationFailure = errors.New("allocation failure")
	// ErrUnknownKind reports a node kind missing from the kind table.
	ErrUnknownKind = fmt.Errorf("unknown node kind: %w", ErrUnsupportedInterface)
)

// InterfaceError carries the kind and interface name an operation failed on.
type InterfaceError struct {
	Op        string // "get_field", "set_field", "dispatch_event", ...
	Kind      string
	Interface string
	Err       error
	Detail    string
}

func (e *InterfaceError) Error() string {
	msg := fmt.Sprintf("vrml: %s %s.%s: %v", e.Op, e.Kind, e.Interface, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the sentinel error.
func (e *InterfaceError) Unwrap() error {
	return e.Err
}

func ifaceErr(op, kind, name string, err error) *InterfaceError {
	return &InterfaceError{Op: op, Kind: kind, Interface: name, Err: err}
}

func mismatchErr(op, kind, name string, want, got FieldKind) *InterfaceError {
	e := ifaceErr(op, kind, name, ErrTypeMismatch)
	e.Detail = fmt.Sprintf("want %s, got %s", want, got)
	return e
}

// IsRecoverable reports whether err may be dropped at the dispatch boundary
// without aborting the current step. Allocation failures are never
// recoverable; nil is trivially recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrAllocationFailure) {
		return false
	}
	return errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrUnsupportedInterface) ||
		errors.Is(err, ErrDuplicateInterface)
}
