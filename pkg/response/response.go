package response

import (
	"errors"
)

// Error carries the HTTP status a domain error maps to.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Wrap attaches a cause to a domain error while keeping it matchable with errors.Is.
func Wrap(domainErr error, cause error) error {
	return &wrapped{domain: domainErr, cause: cause}
}

type wrapped struct {
	domain error
	cause  error
}

func (w *wrapped) Error() string {
	return w.domain.Error() + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() []error {
	return []error{w.domain, w.cause}
}
