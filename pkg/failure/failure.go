// Package failure provides a small error taxonomy for transport boundaries:
// an error carries a kind (mapped to an HTTP status by the caller), a machine
// readable code and a human readable description.
package failure

import "errors"

// ErrorCode is a machine readable error identifier exposed to API clients.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

type kind uint8

const (
	kindUnknown kind = iota
	kindInvalidArgument
	kindNotFound
	kindUnauthorized
	kindForbidden
	kindConflict
	kindUnprocessableEntity
	kindInternal
)

// Error is the concrete error type produced by the constructors below.
type Error struct {
	kind        kind
	code        ErrorCode
	description string
	message     string
	cause       error
}

func (e *Error) Error() string {
	switch {
	case e.message != "" && e.cause != nil:
		return e.message + ": " + e.cause.Error()
	case e.cause != nil:
		return e.cause.Error()
	default:
		return e.message
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

type Option func(*Error)

func WithCode(code ErrorCode) Option {
	return func(e *Error) {
		e.code = code
	}
}

func WithDescription(description string) Option {
	return func(e *Error) {
		e.description = description
	}
}

func newError(k kind, message string, cause error, opts ...Option) *Error {
	e := &Error{ //nolint:exhaustruct
		kind:    k,
		message: message,
		cause:   cause,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func NewInvalidArgumentError(message string, opts ...Option) error {
	return newError(kindInvalidArgument, message, nil, opts...)
}

func NewInvalidArgumentErrorFromError(err error, opts ...Option) error {
	return newError(kindInvalidArgument, "", err, opts...)
}

func NewNotFoundError(message string, opts ...Option) error {
	return newError(kindNotFound, message, nil, opts...)
}

func NewNotFoundErrorFromError(err error, opts ...Option) error {
	return newError(kindNotFound, "", err, opts...)
}

func NewUnauthorizedError(message string, opts ...Option) error {
	return newError(kindUnauthorized, message, nil, opts...)
}

func NewForbiddenError(message string, opts ...Option) error {
	return newError(kindForbidden, message, nil, opts...)
}

func NewConflictError(message string, opts ...Option) error {
	return newError(kindConflict, message, nil, opts...)
}

func NewUnprocessableEntityError(message string, opts ...Option) error {
	return newError(kindUnprocessableEntity, message, nil, opts...)
}

func NewInternalError(message string, opts ...Option) error {
	return newError(kindInternal, message, nil, opts...)
}

func NewInternalErrorFromError(err error, opts ...Option) error {
	return newError(kindInternal, "", err, opts...)
}

func IsInvalidArgumentError(err error) bool { return isKind(err, kindInvalidArgument) }

func IsNotFoundError(err error) bool { return isKind(err, kindNotFound) }

func IsUnauthorizedError(err error) bool { return isKind(err, kindUnauthorized) }

func IsForbiddenError(err error) bool { return isKind(err, kindForbidden) }

func IsConflictError(err error) bool { return isKind(err, kindConflict) }

func IsUnprocessableEntityError(err error) bool { return isKind(err, kindUnprocessableEntity) }

func IsInternalError(err error) bool { return isKind(err, kindInternal) }

func isKind(err error, k kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.kind == k
	}

	return false
}

// Code extracts the error code from err or any error it wraps.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}

	return ""
}

// Description extracts the client facing description from err or any error it
// wraps.
func Description(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.description
	}

	return ""
}
