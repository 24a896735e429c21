// Package cerr defines the categorized errors which may cross the
// use cases boundary. Each error carries an HTTP status code and a
// stable machine-readable code string besides its human readable
// message, so the REST adapter can serialize it without inspecting
// the wrapped error chain.
package cerr

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes of the lending operations.
const (
	CodeBadRequest        = "bad-request"
	CodeBookNotFound      = "book-not-found"
	CodeBorrowerNotFound  = "borrower-not-found"
	CodeLoanNotFound      = "loan-not-found"
	CodeBookUnavailable   = "book-unavailable"
	CodeLoanLimitExceeded = "loan-limit-exceeded"
	CodeUnpaidFines       = "unpaid-fines"
	CodeAlreadyCheckedIn  = "already-checked-in"
	CodeStillCheckedOut   = "still-checked-out"
	CodeSSNRegistered     = "ssn-registered"
)

type Error struct {
	Err            error
	Code           string
	HTTPStatusCode int

	// Meta holds optional machine-readable details of this error,
	// like the total amount for an unpaid fines rejection. It is
	// serialized next to the code and detail keys, hence, the code
	// and detail key names may not be used in it.
	Meta map[string]any
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d %s] %s", e.HTTPStatusCode, e.Code, e.Err.Error())
}

// With returns e after recording the key/value metadata pair in it.
func (e *Error) With(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

func BadRequest(code string, err error) *Error {
	return &Error{Err: err, Code: code, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(code string, err error) *Error {
	return &Error{Err: err, Code: code, HTTPStatusCode: http.StatusNotFound}
}

// Conflict categorizes a business rule rejection, like an already
// borrowed book or an unpaid fines balance. These are reported with
// the 400 status; the machine code tells the kinds apart.
func Conflict(code string, err error) *Error {
	return &Error{Err: err, Code: code, HTTPStatusCode: http.StatusBadRequest}
}
