package xcresult

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrMissingType is reported, wrapped in a [DecodeError], when an
// object that must be inspected to pick its shape has no "_type"
// field.
var ErrMissingType = errors.New("missing _type discriminator")

// TypeError is the error returned when a Go type cannot be used as a
// decoding target.
type TypeError struct {
	// Type is the name of the type that caused the error.
	Type string
	// Reason is an explanation of why the type can't be decoded.
	Reason error
}

func (e TypeError) Error() string {
	return fmt.Sprintf("xcresult cannot decode into %s: %s", e.Type, e.Reason)
}

func (e TypeError) Unwrap() error {
	return e.Reason
}

func typeErr(t reflect.Type, reason string, args ...any) error {
	ts := ""
	if t != nil {
		ts = t.String()
	}
	return TypeError{ts, fmt.Errorf(reason, args...)}
}

// DecodeError is the error returned when a document cannot be
// decoded.
type DecodeError struct {
	// Path locates the offending value in the document, e.g.
	// "$.actions[0].actionResult".
	Path string
	// Err is the underlying failure.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeErr returns a DecodeError for path. If err already carries a
// path, it is returned unchanged so that the innermost path wins.
func decodeErr(path string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{path, err}
}

func decodeErrf(path string, msg string, args ...any) error {
	return &DecodeError{path, fmt.Errorf(msg, args...)}
}

// MismatchError is the error returned when an object's declared type
// resolved to a shape other than the one requested, and decoding the
// object as the requested type failed too.
type MismatchError struct {
	// Declared is the object's declared type.
	Declared *TypeDescriptor
	// Resolved is the shape the declared type resolved to.
	Resolved reflect.Type
	// Want is the type the caller asked for.
	Want reflect.Type
	// Err is the failure from decoding as Want, or nil if Want
	// cannot hold the object at all.
	Err error
}

func (e *MismatchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("object of type %s (shape %s) cannot be decoded as %s", e.Declared, e.Resolved, e.Want)
	}
	return fmt.Sprintf("object of type %s (shape %s) decoded as %s: %s", e.Declared, e.Resolved, e.Want, e.Err)
}

func (e *MismatchError) Unwrap() error {
	return e.Err
}

// DepthError is the error returned when an object's supertype chain
// is longer than the family allows.
type DepthError struct {
	Type  *TypeDescriptor
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("supertype chain of %q exceeds %d levels", e.Type.Name, e.Limit)
}
