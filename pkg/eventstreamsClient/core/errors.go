package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/multierr"
)

var (
	ErrServiceURLMissing    = errors.New("service URL is required")
	ErrAuthenticatorMissing = errors.New("authenticator is required")
)

// MissingParameterError is raised before any I/O when a required path, query or
// body parameter was not supplied.
type MissingParameterError struct {
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s must be provided", e.Parameter)
}

// InvalidParameterError is raised when a parameter with a closed vocabulary
// holds a value outside of it.
type InvalidParameterError struct {
	Parameter string
	Value     string
	Allowed   []string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s has invalid value %q, allowed values are %s", e.Parameter, e.Value, strings.Join(e.Allowed, ", "))
}

// ValidationError groups all local parameter failures of one call.
type ValidationError struct {
	Operation string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Operation, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Errors returns the individual failures.
func (e *ValidationError) Errors() []error {
	return multierr.Errors(e.Err)
}

// HTTPError is returned for every non-2xx status. Body is nil when the error
// body could not be parsed.
type HTTPError struct {
	StatusCode int
	Headers    http.Header
	Body       *ErrorBody
	Raw        map[string]interface{}
	RawBody    []byte
}

func (e *HTTPError) Error() string {
	if e.Body != nil && e.Body.Message != nil && *e.Body.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, *e.Body.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError is returned when a 2xx body does not match the expected model.
type DecodeError struct {
	Model string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Model, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MissingFieldError is the DecodeError cause when a required wire key is absent
// or null.
type MissingFieldError struct {
	Model string
	Field string
	Path  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required property '%s' not present in %s JSON (at %s)", e.Field, e.Model, e.Path)
}

// StatusCode extracts the HTTP status from err, 0 when err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
