package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure that callers and API clients can act on.
type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
	CodeConflict          Code = "CONFLICT"
	CodeEmptyCart         Code = "EMPTY_CART"
	CodeInvalidAddress    Code = "INVALID_ADDRESS"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodePaymentGateway    Code = "PAYMENT_GATEWAY_ERROR"
	CodeInternal          Code = "INTERNAL_ERROR"
	CodeDependency        Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code surfaces at the HTTP boundary.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "request validation failed",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "authentication required",
	},
	CodeForbidden: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "access denied",
	},
	CodeNotFound: {
		HTTPStatus:     http.StatusNotFound,
		PublicMessage:  "resource not found",
		DetailsAllowed: true,
	},
	CodeConflict: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "resource conflict",
		DetailsAllowed: true,
	},
	CodeEmptyCart: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "cart is empty",
	},
	CodeInvalidAddress: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "invalid delivery address",
	},
	CodeInsufficientStock: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "insufficient stock",
		DetailsAllowed: true,
	},
	CodePaymentGateway: {
		HTTPStatus:     http.StatusBadGateway,
		Retryable:      true,
		PublicMessage:  "payment gateway unavailable",
		DetailsAllowed: true,
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:    http.StatusServiceUnavailable,
		Retryable:     true,
		PublicMessage: "service temporarily unavailable",
	},
}

// MetadataFor returns the HTTP metadata for a code, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if md, ok := metadataByCode[code]; ok {
		return md
	}
	return metadataByCode[CodeInternal]
}

// Error is the coded error carried across service boundaries.
type Error struct {
	code    Code
	message string
	details map[string]any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{code: code, message: message, cause: cause}
}

// WithDetails attaches structured context that may be exposed to clients
// when the code's metadata allows it.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.details = details
	return e
}

func (e *Error) Code() Code              { return e.code }
func (e *Error) Message() string         { return e.message }
func (e *Error) Details() map[string]any { return e.details }
func (e *Error) Unwrap() error           { return e.cause }

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// As extracts a coded error from an error chain. Uncoded errors map
// to CodeInternal so callers always get usable metadata.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded
	}
	return Wrap(CodeInternal, "unexpected error", err)
}

// Is reports whether any error in the chain carries the given code.
func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code == code
	}
	return false
}
