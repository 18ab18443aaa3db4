// Package apperror defines the error envelope returned to API clients and the
// error kinds the request boundary knows how to classify.
package apperror

import (
	"net/http"
	"strings"
)

// Titles used in error responses.
const (
	TitleBadRequest      = "BAD_REQUEST"
	TitleUnauthorized    = "UNAUTHORIZED"
	TitleNotFound        = "NOT_FOUND"
	TitleTooManyRequests = "TOO_MANY_REQUESTS"
	TitleInternal        = "INTERNAL_SERVER_ERROR"
)

// ErrorResponse is a client-visible failure: a human-readable message, a short
// machine-readable title and the HTTP status it maps to.
type ErrorResponse struct {
	Message string
	Title   string
	Status  int
}

// New creates an ErrorResponse. An empty title is derived from the status.
func New(message, title string, status int) *ErrorResponse {
	if title == "" {
		title = TitleFor(status)
	}
	return &ErrorResponse{Message: message, Title: title, Status: status}
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// BadRequest returns a 400 envelope.
func BadRequest(message string) *ErrorResponse {
	return New(message, TitleBadRequest, http.StatusBadRequest)
}

// NotFound returns a 404 envelope.
func NotFound(message string) *ErrorResponse {
	return New(message, TitleNotFound, http.StatusNotFound)
}

// Unauthorized returns a 401 envelope.
func Unauthorized(message string) *ErrorResponse {
	return New(message, TitleUnauthorized, http.StatusUnauthorized)
}

// TooManyRequests returns a 429 envelope.
func TooManyRequests(message string) *ErrorResponse {
	return New(message, TitleTooManyRequests, http.StatusTooManyRequests)
}

// Internal returns a 500 envelope.
func Internal(message string) *ErrorResponse {
	return New(message, TitleInternal, http.StatusInternalServerError)
}

// TitleFor turns a status code into its upper snake case name, e.g. 404 -> NOT_FOUND.
func TitleFor(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return TitleInternal
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}

// ConstraintError marks a storage-level rejection: unique, check or foreign key
// violations and malformed column data.
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	if e.Err == nil {
		return "constraint violation"
	}
	return e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// InputError is a caller input problem detected before domain code runs, such
// as a malformed body or path parameter. Code overrides the 400 status.
type InputError struct {
	Message string
	Code    int
}

func (e *InputError) Error() string {
	return e.Message
}
