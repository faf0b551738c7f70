// Package internal provides the transport-level plumbing for apix.
package internal

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// RetryTransport implements http.RoundTripper with bounded linear-backoff
// retries and an optional circuit breaker.
//
// Retries fire only for transport-level failures (no response received) and
// for 5xx responses to idempotent methods. A 5xx on a non-idempotent method
// is returned to the caller after a single attempt, so the response body and
// any server error envelope stay available upstream.
type RetryTransport struct {
	base       http.RoundTripper
	maxRetries int
	interval   time.Duration
	cb         *gobreaker.CircuitBreaker
}

// NewRetryTransport creates a retry transport. The wait before retry n is
// n*interval (linear, not exponential). cb may be nil to disable the breaker.
func NewRetryTransport(base http.RoundTripper, maxRetries int, interval time.Duration, cb *gobreaker.CircuitBreaker) *RetryTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RetryTransport{
		base:       base,
		maxRetries: maxRetries,
		interval:   interval,
		cb:         cb,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.cb != nil {
		result, cbErr := t.cb.Execute(func() (interface{}, error) {
			return t.roundTripWithRetry(req)
		})
		if cbErr != nil {
			return nil, cbErr
		}
		return result.(*http.Response), nil
	}

	return t.roundTripWithRetry(req)
}

func (t *RetryTransport) roundTripWithRetry(req *http.Request) (*http.Response, error) {
	var lastResp *http.Response
	var lastErr error

	bo := backoff.WithContext(newLinearBackOff(t.interval), req.Context())
	bo.Reset()

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		cloned := req.Clone(req.Context())
		if req.Body != nil && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			cloned.Body = body
		}

		resp, err := t.base.RoundTrip(cloned)
		if !retryable(req.Method, resp, err) {
			return resp, err
		}

		lastResp = resp
		lastErr = err

		if attempt == t.maxRetries {
			break
		}

		// The retried response is replaced by the next attempt's.
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
			lastResp = nil
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		time.Sleep(wait)
	}

	return lastResp, lastErr
}

// retryable reports whether the outcome of one attempt warrants another.
func retryable(method string, resp *http.Response, err error) bool {
	if err != nil {
		// Transport-level failure, no response received.
		return true
	}
	return resp.StatusCode >= 500 && idempotent(method)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

// linearBackOff implements backoff.BackOff with waits of interval, 2*interval,
// 3*interval, ... between successive attempts.
type linearBackOff struct {
	interval time.Duration
	n        int
}

func newLinearBackOff(interval time.Duration) backoff.BackOff {
	return &linearBackOff{interval: interval}
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.interval
}

func (b *linearBackOff) Reset() {
	b.n = 0
}
