package errors

import (
	stderrors "errors"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest ErrorKind = "bad_request"
	KindInternal   ErrorKind = "internal"
)

// APIError is the error body returned to clients. Only Message is
// serialized; the rest is kept for logging.
type APIError struct {
	Kind      ErrorKind `json:"-"`
	Message   string    `json:"error"`
	Code      string    `json:"-"`
	RequestID string    `json:"-"`
	Cause     error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}

// WrapError attaches a client-facing message and kind to err. The cause
// stays reachable through errors.Unwrap but is never serialized.
func WrapError(err error, kind ErrorKind, message string) *APIError {
	if err == nil {
		return nil
	}

	apiErr := &APIError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}

	var orig *APIError
	if stderrors.As(err, &orig) && orig.Code != "" {
		apiErr.Code = orig.Code
	}

	return apiErr
}

// WithCode sets a machine readable code used in logs and metrics.
func (e *APIError) WithCode(code string) *APIError {
	e.Code = code
	return e
}
