package reflect

import (
	"errors"
	"strings"
)

var (
	// ErrArgumentMismatch is the Kind of an AccessError caused by an
	// object that is not an instance of the declaring class, or a value
	// that is not assignable to the field's type.
	ErrArgumentMismatch = errors.New("argument mismatch")
	// ErrIllegalAccess is the Kind of an AccessError caused by the
	// field's visibility, or by a write to a final field.
	ErrIllegalAccess = errors.New("illegal access")

	ErrDuplicateClass = errors.New("class already registered")
	ErrUnknownClass   = errors.New("unknown class")
)

// AccessError is returned by Field.Get and Field.Set. errors.Is matches
// both its Kind and its underlying cause.
type AccessError struct {
	Kind  error
	Class string
	Field string
	Msg   string
	Err   error
}

func (e *AccessError) Error() string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Msg != "" {
		sb.WriteString(": " + e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

func (e *AccessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

var (
	errNotAnObject = errors.New("not an object")
	errNullObject  = errors.New("null object for an instance field")
	errFinalField  = errors.New("field is final")
)
