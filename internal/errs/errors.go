// Package errs defines the error taxonomy shared by the payment pipeline:
// validation failures return to the caller with field-identifying messages,
// not-found errors map to 404-equivalents, conflicts mark internal invariant
// breaches, and everything else is an opaque internal error.
package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Stable error codes surfaced to API clients.
const (
	CodePaymentNotFound            = "payment_not_found"
	CodeMerchantAccountNotFound    = "merchant_account_not_found"
	CodeMissingRequiredField       = "missing_required_field"
	CodeInvalidDataFormat          = "invalid_data_format"
	CodeInvalidRequestData         = "invalid_request_data"
	CodeDuplicateConnectorResponse = "duplicate_connector_response"
	CodeInternalServerError        = "internal_server_error"
)

// Error carries the kind used at the transport boundary, a stable code, a
// caller-facing message and an optional wrapped cause kept for server-side
// diagnostics only.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func Internal(message string) *Error {
	return New(KindInternal, CodeInternalServerError, message)
}

// Wrap attaches a cause to a taxonomy error.
func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// WrapInternal wraps any persistence or collaborator failure as internal.
func WrapInternal(err error, message string) *Error {
	return Wrap(err, KindInternal, CodeInternalServerError, message)
}

// KindOf extracts the taxonomy kind; unclassified errors count as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf extracts the stable code; unclassified errors report internal_server_error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalServerError
}

// PublicMessage returns the message safe to show a caller. Internal and
// conflict errors stay opaque; their detail lives in server-side logs.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation, KindNotFound:
			return e.Message
		}
	}
	return "internal server error"
}
