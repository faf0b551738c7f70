package apix

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ethanz-code/appkit/apix/internal"
)

type requestConfig struct {
	query  url.Values
	header http.Header
}

// RequestOption adjusts a single request.
type RequestOption func(*requestConfig)

// WithQuery sets query parameters. Array-valued keys are serialized with the
// bracket convention (a[]=1&a[]=2).
func WithQuery(values url.Values) RequestOption {
	return func(rc *requestConfig) { rc.query = values }
}

// WithQueryParam adds a single query parameter.
func WithQueryParam(key string, values ...string) RequestOption {
	return func(rc *requestConfig) {
		if rc.query == nil {
			rc.query = url.Values{}
		}
		for _, v := range values {
			rc.query.Add(key, v)
		}
	}
}

// WithHeader sets a request header, overriding the client default.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.header == nil {
			rc.header = http.Header{}
		}
		rc.header.Set(key, value)
	}
}

// do executes one request and returns the response body and HTTP status.
// Non-2xx responses are returned as *HTTPError carrying the body and, when
// the body parses as an envelope, the server's own error envelope.
func (c *Client) do(ctx context.Context, method, path string, body any, opts ...RequestOption) ([]byte, int, error) {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	target := strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if qs := internal.EncodeQuery(rc.query); qs != "" {
		target += "?" + qs
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, err
	}
	for k, vs := range c.headers {
		req.Header[k] = vs
	}
	for k, vs := range rc.header {
		req.Header[k] = vs
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	env := parseEnvelope(raw)

	// The unauthorized signal lives in the body, not the HTTP status: a 200
	// carrying code 401 still fires the hook. The response passes through
	// unchanged either way.
	if env != nil && env.Code != nil && *env.Code == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.logger.Warn("unauthorized response", "method", method, "path", path)
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &HTTPError{
			Status:   resp.StatusCode,
			Body:     raw,
			Envelope: env,
		}
	}

	return raw, resp.StatusCode, nil
}
