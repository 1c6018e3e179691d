package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers never match on message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindTransport
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields lists the missing or invalid inputs, when the caller can supply them.
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ErrValidation(code, message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func ErrConflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func ErrNotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func ErrForbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func ErrTransport(code string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    code,
		Message: "Erreur technique, veuillez réessayer.",
		Err:     err,
	}
}

// As returns the typed error carried by err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, code string) bool {
	if e, ok := As(err); ok {
		return e.Code == code
	}
	return false
}
