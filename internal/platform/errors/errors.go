// Package errors is the project error type, a code plus message around an optional cause
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies failures for callers, the bot picks its reply text by code
// values go out on the admin api, add at the end
type ErrorCode uint16

// Codes, in wire order
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeUnauthorized
	ErrorCodeForbidden
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeMalformedToken
	ErrorCodeStorageUnavailable
)

var codes = map[ErrorCode]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:            {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:              {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:        {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:    {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeUnauthorized:       {"unauthorized", http.StatusUnauthorized},
	ErrorCodeForbidden:          {"forbidden", http.StatusForbidden},
	ErrorCodeInvalidArgument:    {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:         {"validation", http.StatusBadRequest},
	ErrorCodeNotFound:           {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:       {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:                 {"db", http.StatusInternalServerError},
	ErrorCodeMalformedToken:     {"malformed_token", http.StatusBadRequest},
	ErrorCodeStorageUnavailable: {"storage_unavailable", http.StatusServiceUnavailable},
}

// String is the snake case name used in logs
func (c ErrorCode) String() string {
	if info, ok := codes[c]; ok {
		return info.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps c to a status, unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Error carries a code and a message, optionally a field, an op label and a cause
// the message is safe to show callers, the cause is not
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

// Wire is the caller facing form of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	default:
		return e.msg
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op is the operation label set by WithOp
func (e *Error) Op() string { return e.op }

// WireFrom converts any error for callers, foreign errors become Unknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns the code of the outermost *Error, Unknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// with copies the outermost *Error and applies fn, foreign errors pass through unchanged
func with(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// WithField returns a copy of err naming the offending field
func WithField(err error, field string) error { return with(err, func(e *Error) { e.field = field }) }

// WithOp returns a copy of err tagged with op
func WithOp(err error, op string) error { return with(err, func(e *Error) { e.op = op }) }

// New builds an error with a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches code and msg to cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf attaches code and a formatted message to cause
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// NotFoundf builds a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf builds an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// PanicErrf builds the error a recovered panic is reported as
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf builds an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Forbiddenf builds a forbidden error
func Forbiddenf(format string, a ...any) error { return Newf(ErrorCodeForbidden, format, a...) }

// MalformedTokenf builds the error for an undecodable interaction token
func MalformedTokenf(format string, a ...any) error { return Newf(ErrorCodeMalformedToken, format, a...) }

// StorageUnavailable wraps err as unreachable storage tagged with op
func StorageUnavailable(err error, op string) error {
	return WithOp(Wrap(err, ErrorCodeStorageUnavailable, "storage unavailable"), op)
}

// Retryable reports lock contention or a transient failure on either sql backend
func Retryable(err error) bool { return IsRetryable(err) || IsSQLiteBusy(err) }
