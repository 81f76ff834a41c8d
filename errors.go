package props

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a read addressing a name absent from the container.
	ErrNotFound = errors.New("not found")
	// ErrTypeMismatch reports a requested or supplied kind that disagrees with
	// the kind stored under a name, or a value outside the supported kinds.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidParameter reports a malformed name, a write beneath a leaf, or
	// an empty array.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// PropertyError ties a failure to the operation and name that produced it.
type PropertyError struct {
	Op   string
	Name string
	Err  error
}

func (e *PropertyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("props: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *PropertyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func notFound(op, name string) error {
	return &PropertyError{Op: op, Name: name, Err: ErrNotFound}
}

func mismatch(op, name string, stored, requested Kind) error {
	return &PropertyError{
		Op:   op,
		Name: name,
		Err:  fmt.Errorf("%w: stored %s, requested %s", ErrTypeMismatch, stored, requested),
	}
}

func notLeaf(op, name string) error {
	return &PropertyError{
		Op:   op,
		Name: name,
		Err:  fmt.Errorf("%w: %q is a property set", ErrTypeMismatch, name),
	}
}

func notSet(op, name string) error {
	return &PropertyError{
		Op:   op,
		Name: name,
		Err:  fmt.Errorf("%w: %q is not a property set", ErrTypeMismatch, name),
	}
}

func invalid(op, name, format string, args ...any) error {
	return &PropertyError{
		Op:   op,
		Name: name,
		Err:  fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)),
	}
}

func wrapProperty(op, name string, err error) error {
	if err == nil {
		return nil
	}
	var propErr *PropertyError
	if errors.As(err, &propErr) {
		return err
	}
	return &PropertyError{Op: op, Name: name, Err: err}
}
