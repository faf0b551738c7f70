package apix

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the envelope every backend reply is expected to match.
// Data is nil on every failure path; Code's success values are defined by
// the service, not by this package.
type Response[T any] struct {
	Data *T     `json:"data"`
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

// serverEnvelope is the shape check applied to response bodies. A body counts
// as an envelope only when both msg and code are present.
type serverEnvelope struct {
	Data json.RawMessage `json:"data"`
	Msg  *string         `json:"msg"`
	Code *int            `json:"code"`
}

// parseEnvelope returns the decoded envelope, or nil when the body does not
// have the envelope shape.
func parseEnvelope(body []byte) *serverEnvelope {
	if len(body) == 0 {
		return nil
	}
	var env serverEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	if env.Msg == nil || env.Code == nil {
		return nil
	}
	return &env
}

// HTTPError is a non-2xx response. When the body parsed as an envelope,
// Envelope holds the server's own error contract.
type HTTPError struct {
	Status   int
	Body     []byte
	Envelope *serverEnvelope
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Envelope != nil && e.Envelope.Msg != nil && *e.Envelope.Msg != "" {
		return fmt.Sprintf("http %d: %s", e.Status, *e.Envelope.Msg)
	}
	return fmt.Sprintf("http %d: %s", e.Status, http.StatusText(e.Status))
}

// Normalize converts any request failure into a well-formed envelope. It is
// total: whatever err is, the result has nil Data, a non-empty Msg, and a
// numeric Code.
//
// The server's own error envelope wins over anything synthesized locally:
//  1. non-2xx response whose body is an envelope: returned as delivered
//  2. non-2xx response without a usable envelope: status text, HTTP status code
//  3. any other error: its message, code 500
//  4. nil: "unknown error", code 500
func Normalize[T any](err error) Response[T] {
	switch e := err.(type) {
	case *HTTPError:
		if e.Envelope != nil {
			resp := Response[T]{Msg: *e.Envelope.Msg, Code: *e.Envelope.Code}
			if len(e.Envelope.Data) > 0 && string(e.Envelope.Data) != "null" {
				var data T
				if jsonErr := json.Unmarshal(e.Envelope.Data, &data); jsonErr == nil {
					resp.Data = &data
				}
			}
			return resp
		}
		msg := http.StatusText(e.Status)
		if msg == "" {
			msg = "request failed"
		}
		code := e.Status
		if code == 0 {
			code = http.StatusInternalServerError
		}
		return Response[T]{Msg: msg, Code: code}
	case nil:
		return Response[T]{Msg: "unknown error", Code: http.StatusInternalServerError}
	default:
		msg := err.Error()
		if msg == "" {
			msg = "unknown error"
		}
		return Response[T]{Msg: msg, Code: http.StatusInternalServerError}
	}
}
