package apix

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethanz-code/appkit/core/errors"
)

// The request surface comes in two families. The enveloped functions never
// return an error: every failure is normalized into a Response and callers
// branch on Code. The Raw functions decode the body into T directly and
// propagate every failure unchanged.
//
// These are package functions rather than methods because Go methods cannot
// introduce type parameters.

// Get performs an enveloped GET.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) Response[T] {
	return enveloped[T](c.do(ctx, http.MethodGet, path, nil, opts...))
}

// Post performs an enveloped POST with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) Response[T] {
	return enveloped[T](c.do(ctx, http.MethodPost, path, body, opts...))
}

// Put performs an enveloped PUT with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) Response[T] {
	return enveloped[T](c.do(ctx, http.MethodPut, path, body, opts...))
}

// Patch performs an enveloped PATCH with a JSON body.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) Response[T] {
	return enveloped[T](c.do(ctx, http.MethodPatch, path, body, opts...))
}

// Delete performs an enveloped DELETE.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) Response[T] {
	return enveloped[T](c.do(ctx, http.MethodDelete, path, nil, opts...))
}

// GetRaw performs a GET and decodes the body into T.
func GetRaw[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	body, _, err := c.do(ctx, http.MethodGet, path, nil, opts...)
	return raw[T]("apix.GetRaw", body, err)
}

// PostRaw performs a POST and decodes the body into T.
func PostRaw[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	respBody, _, err := c.do(ctx, http.MethodPost, path, body, opts...)
	return raw[T]("apix.PostRaw", respBody, err)
}

// PutRaw performs a PUT and decodes the body into T.
func PutRaw[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	respBody, _, err := c.do(ctx, http.MethodPut, path, body, opts...)
	return raw[T]("apix.PutRaw", respBody, err)
}

// PatchRaw performs a PATCH and decodes the body into T.
func PatchRaw[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	respBody, _, err := c.do(ctx, http.MethodPatch, path, body, opts...)
	return raw[T]("apix.PatchRaw", respBody, err)
}

// DeleteRaw performs a DELETE and decodes the body into T.
func DeleteRaw[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	body, _, err := c.do(ctx, http.MethodDelete, path, nil, opts...)
	return raw[T]("apix.DeleteRaw", body, err)
}

func enveloped[T any](body []byte, status int, err error) Response[T] {
	if err != nil {
		return Normalize[T](err)
	}
	if len(body) == 0 {
		return Response[T]{Code: status}
	}
	var resp Response[T]
	if jsonErr := json.Unmarshal(body, &resp); jsonErr != nil {
		return Normalize[T](jsonErr)
	}
	return resp
}

func raw[T any](op string, body []byte, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if len(body) == 0 {
		return out, nil
	}
	if jsonErr := json.Unmarshal(body, &out); jsonErr != nil {
		return out, errors.Wrap(errors.CodeInternal, op, jsonErr)
	}
	return out, nil
}
