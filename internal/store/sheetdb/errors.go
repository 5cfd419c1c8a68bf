package sheetdb

import (
	"fmt"
	"net/http"
)

// TransportError covers both a request that never got a response
// (StatusCode == 0) and a response with a non-2xx status.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("sheetdb %s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	}
	msg := fmt.Sprintf("sheetdb %s: %s %s: %d %s", e.Op, e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the store answered with a body that is not a list of
// records.
type ParseError struct {
	Op    string
	Index int // element index, -1 when the whole body is malformed
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("sheetdb %s: parse response: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sheetdb %s: parse record %d: %v", e.Op, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
