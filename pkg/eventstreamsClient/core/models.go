package core

import (
	"net/http"
)

// ErrorBody is the error document both Event Streams APIs return with a non-2xx status.
// Every field is optional, the body is parsed best-effort.
type ErrorBody struct {
	ErrorCode  *int64  `json:"error_code"`
	Message    *string `json:"message"`
	IncidentID *string `json:"incident_id"`
}

// DetailedResponse is returned by every operation, successful or not, once the
// HTTP exchange itself completed.
type DetailedResponse struct {
	StatusCode int
	Headers    http.Header
	// Result holds the decoded value, nil for bodyless responses.
	Result    interface{}
	RawResult []byte
}

func (d *DetailedResponse) GetStatusCode() int {
	if d == nil {
		return 0
	}
	return d.StatusCode
}

func (d *DetailedResponse) GetHeaders() http.Header {
	if d == nil {
		return nil
	}
	return d.Headers
}

func StringPtr(s string) *string {
	return &s
}

func Int64Ptr(i int64) *int64 {
	return &i
}

func BoolPtr(b bool) *bool {
	return &b
}
